package wgapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// StatusOK is the envelope status of a successful response.
const StatusOK = "ok"

// ErrMalformed is returned for responses that cannot be decoded.
var ErrMalformed = errors.New("malformed api response")

// Response is the WG API envelope. Data maps ids to records; ids the API
// does not know map to null.
type Response[T any] struct {
	Status string        `json:"status"`
	Meta   *Meta         `json:"meta,omitempty"`
	Data   map[string]*T `json:"data"`
	Error  *Error        `json:"error,omitempty"`
}

// Meta carries the record count.
type Meta struct {
	Count int `json:"count"`
}

// Error is the error block of a failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d: %s (%s=%s)", e.Code, e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Decode reads an envelope from r. An error block is returned as *Error;
// undecodable input and non-ok statuses wrap ErrMalformed.
func Decode[T any](r io.Reader) (*Response[T], error) {
	var resp Response[T]
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Status != "" && resp.Status != StatusOK {
		return nil, fmt.Errorf("%w: status %q", ErrMalformed, resp.Status)
	}
	return &resp, nil
}

// IDs returns the data keys in sorted order.
func (r *Response[T]) IDs() []string {
	ids := make([]string, 0, len(r.Data))
	for id := range r.Data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsClientError reports whether err came from a bad or failed response.
func IsClientError(err error) bool {
	var apiErr *Error
	return errors.Is(err, ErrMalformed) || errors.As(err, &apiErr)
}
