package domain

// Status is the lifecycle state of a pedido. Transitions are linear and
// forward-only: open -> in_kitchen -> served -> closed.
type Status string

const (
	StatusOpen      Status = "open"
	StatusInKitchen Status = "in_kitchen"
	StatusServed    Status = "served"
	StatusClosed    Status = "closed"
)

var statusRank = map[Status]int{
	StatusOpen:      0,
	StatusInKitchen: 1,
	StatusServed:    2,
	StatusClosed:    3,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := statusRank[st]
	return st, ok
}

func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether next is the immediate successor of s.
// Skips and backward moves are rejected.
func (s Status) CanTransitionTo(next Status) bool {
	a, okA := statusRank[s]
	b, okB := statusRank[next]
	if !okA || !okB {
		return false
	}
	return b == a+1
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool { return s == StatusClosed }

// Active reports whether the pedido still represents unfulfilled kitchen work.
func (s Status) Active() bool { return s == StatusOpen || s == StatusInKitchen }

// ActiveStatuses lists the statuses shown on the comanda feed.
func ActiveStatuses() []Status { return []Status{StatusOpen, StatusInKitchen} }
