package domain

import (
	"strconv"
	"strings"
)

// ParseMeasure converts free-form user input ("2.5", " 40 ") into a
// measurement. Unparsable input yields 0, matching the add-catch form
// behavior where a bad weight or length is stored as zero rather than
// rejected.
func ParseMeasure(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
