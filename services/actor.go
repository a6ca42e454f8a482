package services

// Actor identifies who is performing an operation. The zero value is the
// anonymous actor.
type Actor struct {
	ID      uint
	IsAdmin bool
}

func (a Actor) Authenticated() bool {
	return a.ID != 0
}
