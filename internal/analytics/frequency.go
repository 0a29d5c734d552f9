package analytics

import (
	"strings"

	"github.com/guttosm/fxpulse/internal/domain/models"
)

// ParseFrequency maps a selector value (case-insensitive) to a models.Frequency.
func ParseFrequency(s string) (models.Frequency, error) {
	v := strings.TrimSpace(s)
	for _, f := range models.Frequencies {
		if strings.EqualFold(v, string(f)) {
			return f, nil
		}
	}
	return "", &UnknownFrequencyError{Value: s}
}
