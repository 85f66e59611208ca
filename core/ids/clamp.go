package ids

import "time"

// DefaultClockSkew is how far in the future an upstream timestamp may be
// before it is treated as clock skew.
const DefaultClockSkew = 36000 * time.Second

// ClampTimestamp pulls a timestamp more than slack ahead of now back to now.
// It reports whether the value was clamped. Run it before encoding.
func ClampTimestamp(ts int64, now time.Time, slack time.Duration) (int64, bool) {
	if ts > now.Add(slack).Unix() {
		return now.Unix(), true
	}
	return ts, false
}
