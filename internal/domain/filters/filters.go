package filters

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filters carries pagination decoded from query parameters.
type Filters struct {
	Page  int `schema:"page"`
	Limit int `schema:"limit"`
}

// Normalize coerces out-of-range values to the defaults instead of rejecting them.
func (f *Filters) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.Limit
}
