package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleCount is an int that unmarshals from either a JSON number or a
// numeric string. Anything unparsable decodes to 0 rather than failing the
// whole payload; callers treat 0 as "unknown" and fall back to a count
// derived elsewhere.
type FlexibleCount int

func (c *FlexibleCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = FlexibleCount(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*c = 0
		return nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*c = 0
		return nil
	}
	*c = FlexibleCount(parsed)
	return nil
}
