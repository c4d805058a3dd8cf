package diag

// Severity defines the importance of a report. The numeric value doubles
// as the verbosity rank: a report is printed when its rank does not exceed
// the printer's verbosity, so errors survive down to verbosity 1 while
// info chatter needs verbosity 3.
type Severity uint8

const (
	// SevError is for reports that abort the current unit of work.
	SevError Severity = iota + 1
	// SevWarning is for reports the user may act on but need not.
	SevWarning
	SevInfo
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	}
	return "UNKNOWN"
}
