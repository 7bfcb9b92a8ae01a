package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotNumeric = errors.New("value is not a valid number")

// Float accepts either a JSON number or a string holding one, so form posts
// that send "4.5" decode the same as 4.5.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrNotNumeric
		}
		raw = strings.TrimSpace(s)
	}
	if raw == "" {
		return ErrNotNumeric
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNotNumeric
	}
	*f = Float(v)
	return nil
}

// Ptr converts an optional Float into an optional float64.
func (f *Float) Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}
