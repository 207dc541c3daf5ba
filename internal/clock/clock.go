package clock

import "time"

// Clock abstracts wall-clock reads so derived values (invoice numbers,
// completion dates) stay testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
