package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"blitz-stats/core/wgapi"
)

// DecodeTankStats reads a tanks/stats response, whose data maps account ids
// to lists of records. Records with an "all" block decode as WGTankStat,
// others as WGTankStatV1.
func DecodeTankStats(r io.Reader) ([]any, error) {
	resp, err := wgapi.Decode[[]json.RawMessage](r)
	if err != nil {
		return nil, err
	}

	var payloads []any
	for _, account := range resp.IDs() {
		records := resp.Data[account]
		if records == nil {
			continue
		}
		for i, raw := range *records {
			p, err := decodeTankStat(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: account %s record %d: %v", wgapi.ErrMalformed, account, i, err)
			}
			payloads = append(payloads, p)
		}
	}
	return payloads, nil
}

func decodeTankStat(raw json.RawMessage) (any, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if _, v2 := probe["all"]; v2 {
		var w WGTankStat
		err := json.Unmarshal(raw, &w)
		return w, err
	}
	var w WGTankStatV1
	err := json.Unmarshal(raw, &w)
	return w, err
}

// DecodeAchievements reads an account/achievements response keyed by account
// id. Records with a "max_series" block decode as AchievementsMain, others as
// MaxSeriesRecord. A missing account id is taken from the data key.
func DecodeAchievements(r io.Reader) ([]Payload, error) {
	resp, err := wgapi.Decode[json.RawMessage](r)
	if err != nil {
		return nil, err
	}

	var payloads []Payload
	for _, key := range resp.IDs() {
		raw := resp.Data[key]
		if raw == nil {
			continue
		}
		accountID, _ := strconv.ParseInt(key, 10, 64)

		p, err := decodeAchievement(*raw, accountID)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %v", wgapi.ErrMalformed, key, err)
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

func decodeAchievement(raw json.RawMessage, accountID int64) (Payload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if _, nested := probe["max_series"]; nested {
		var a AchievementsMain
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		if a.AccountID == 0 {
			a.AccountID = accountID
		}
		return a, nil
	}
	var m MaxSeriesRecord
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m.AccountID == 0 {
		m.AccountID = accountID
	}
	return m, nil
}

// Payloads widens a payload list for the registry.
func Payloads(ps []Payload) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}
