package models

// Frequency is the aggregation granularity selected by the user.
type Frequency string

const (
	Annual    Frequency = "Annual"
	Monthly   Frequency = "Monthly"
	Weekly    Frequency = "Weekly"
	Quarterly Frequency = "Quarterly"
)

// Frequencies lists the supported frequencies in selector order.
var Frequencies = []Frequency{Annual, Monthly, Weekly, Quarterly}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Annual, Monthly, Weekly, Quarterly:
		return true
	}
	return false
}
