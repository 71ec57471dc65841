package value

import "time"

// DateTime is a naive local date-time value, per spec §3.1.
type DateTime struct {
	T time.Time
}

// NewDateTime wraps t as a DateTime value.
func NewDateTime(t time.Time) DateTime { return DateTime{T: t} }

func (d DateTime) String() string  { return d.T.Format("2006-01-02 15:04:05") }
func (d DateTime) Debug() string   { return "DateTime(" + d.String() + ")" }
func (DateTime) Type() string      { return "DateTime" }
func (d DateTime) Truthy() bool    { return !d.T.IsZero() }
func (d DateTime) HashKey() string { return d.T.Format(time.RFC3339Nano) }

// FileSize is an unsigned byte count with human-readable formatting, per
// spec §3.1.
type FileSize uint64

const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
	tb = 1 << 40
)

func (s FileSize) String() string {
	switch n := uint64(s); {
	case n >= tb:
		return humanSize(float64(n)/float64(tb), "TB")
	case n >= gb:
		return humanSize(float64(n)/float64(gb), "GB")
	case n >= mb:
		return humanSize(float64(n)/float64(mb), "MB")
	case n >= kb:
		return humanSize(float64(n)/float64(kb), "KB")
	default:
		return humanSize(float64(n), "B")
	}
}

func humanSize(v float64, unit string) string {
	return Float(v).String() + unit
}

func (s FileSize) Debug() string   { return s.String() }
func (FileSize) Type() string      { return "FileSize" }
func (s FileSize) Truthy() bool    { return s != 0 }
func (s FileSize) HashKey() string { return s.String() }
