package clock

import "time"

// Clock abstracts time so derivations can be computed against one stable
// instant per pass and tests can pin "now".
type Clock interface {
	Now() time.Time
}

type system struct{}

// NewSystem returns a Clock backed by time.Now.
func NewSystem() Clock {
	return system{}
}

func (system) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock pinned to one instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
