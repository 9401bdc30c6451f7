package workspace

// Kind selects which path under the root to compute.
type Kind int

const (
	// KindTemplate is <root>/<template>.
	KindTemplate Kind = iota
	// KindYear is <root>/<year>.
	KindYear
	// KindDate is <root>/<year>/<date>.
	KindDate
)

// String returns the command-line name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindYear:
		return "year"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}
