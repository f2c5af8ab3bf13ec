package normalize

import (
	"strconv"
	"strings"

	"github.com/gyeh/anestrev/internal/model"
)

// ParseDurationHours converts an "H:MM" duration into decimal hours.
// Returns nil when the text is blank, the absence marker, or anything other
// than exactly two integer parts separated by a colon. nil means the
// surgery has no usable duration, not a duration of zero.
func ParseDurationHours(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == model.AbsentMarker {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	hours := float64(h) + float64(m)/60.0
	return &hours
}
