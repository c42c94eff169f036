package sim

type outcome int

const (
	recovered    outcome = iota // decoded to the sent codeword
	detected                    // reported uncorrectable
	miscorrected                // decoded to a different codeword
)

// Level tallies the trials of one parity level. Patterns are split by
// whether 2*errors + erasures fits within the parity count.
type Level struct {
	Parity     int
	MessageLen int
	Trials     int

	WithinRadius    int
	WithinRecovered int

	BeyondRadius    int
	BeyondDetected  int
	BeyondRecovered int

	Miscorrected int
}

func (l *Level) record(within bool, o outcome) {
	l.Trials++
	if o == miscorrected {
		l.Miscorrected++
	}
	if within {
		l.WithinRadius++
		if o == recovered {
			l.WithinRecovered++
		}
		return
	}
	l.BeyondRadius++
	switch o {
	case detected:
		l.BeyondDetected++
	case recovered:
		l.BeyondRecovered++
	}
}

// Failures counts trials whose outcome disagreed with the radius: within
// radius but not recovered, or beyond radius and recovered anyway.
func (l *Level) Failures() int {
	return l.WithinRadius - l.WithinRecovered + l.BeyondRecovered
}
