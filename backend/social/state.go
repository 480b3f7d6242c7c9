package social

// ViewState is what a read-only view currently shows.
type ViewState int

const (
	Loading ViewState = iota
	Error
	Empty
	Populated
	// Idle is a search that has nothing to search for yet.
	Idle
)

func (s ViewState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	case Idle:
		return "idle"
	}
	return "unknown"
}

func stateOf(count int) ViewState {
	if count == 0 {
		return Empty
	}
	return Populated
}
