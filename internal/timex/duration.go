// Package timex provides time helpers for configuration decoding.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON can carry either a Go duration string
// such as "30s" or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

// MarshalJSON encodes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "1m30s" style strings and integer nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}
