package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that can be unmarshaled from either a JSON number or
// a numeric string. The OpenFoodFacts API is inconsistent about which one it
// sends per field, sometimes within the same response.
type FlexFloat float64

// UnmarshalJSON implements the json.Unmarshaler interface.
// Missing, null or unparseable values resolve to zero instead of failing the
// whole record.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Float converts back to a plain float64, with nil meaning zero.
func (f *FlexFloat) Float() float64 {
	if f == nil {
		return 0
	}
	return float64(*f)
}
