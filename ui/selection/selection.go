package selection

import (
	"sync"

	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/util"
)

type State int

const (
	Idle State = iota
	Selecting
)

func (s State) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// Machine tracks which images of a grid are checked. It is Selecting only
// while at least one image is checked.
type Machine struct {
	mux      sync.Mutex
	armed    bool
	selected *util.Set[apitype.ImageId]
}

func NewMachine() *Machine {
	return &Machine{
		selected: util.NewSet[apitype.ImageId](),
	}
}

func (s *Machine) State() State {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state()
}

func (s *Machine) state() State {
	if s.selected.Len() > 0 {
		return Selecting
	}
	return Idle
}

func (s *Machine) IsSelecting() bool {
	return s.State() == Selecting
}

// Begin is the explicit "select images" action. The machine stays Idle but
// the next click checks an image instead of opening it.
func (s *Machine) Begin() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.armed = true
}

// IsArmed tells if clicks check images.
func (s *Machine) IsArmed() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.armed || s.selected.Len() > 0
}

// Toggle checks or unchecks the image. Unchecking the last one returns to
// Idle.
func (s *Machine) Toggle(id apitype.ImageId) State {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.selected.Contains(id) {
		s.selected.Remove(id)
		if s.selected.Len() == 0 {
			s.armed = false
		}
	} else {
		s.selected.Add(id)
	}
	return s.state()
}

// Cancel unchecks everything.
func (s *Machine) Cancel() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.reset()
}

// Settle is called when a bulk action has finished, whether it succeeded or
// not.
func (s *Machine) Settle() {
	s.Cancel()
}

func (s *Machine) reset() {
	s.armed = false
	s.selected.Clear()
}

// Selected returns the checked ids in the order they were checked.
func (s *Machine) Selected() []apitype.ImageId {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selected.Values()
}

func (s *Machine) Count() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selected.Len()
}

func (s *Machine) IsSelected(id apitype.ImageId) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selected.Contains(id)
}

// CanEdit is true when exactly one image is checked.
func (s *Machine) CanEdit() bool {
	return s.Count() == 1
}

func (s *Machine) CanBulkDelete() bool {
	return s.Count() >= 1
}

func (s *Machine) CanTransfer() bool {
	return s.Count() >= 1
}
