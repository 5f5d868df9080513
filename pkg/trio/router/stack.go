package router

import "slices"

// StackEntry is one visited screen: the input it ran with and the resume
// state it returned when navigation moved on.
type StackEntry struct {
	Screen Screen
	Input  any
	Resume any
}

// Stack is the back-navigation history.
type Stack struct {
	entries []StackEntry
}

func NewStack() *Stack {
	return &Stack{}
}

// Push records screen before navigating forward.
func (s *Stack) Push(screen Screen, input any, resume any) {
	s.entries = append(s.entries, StackEntry{Screen: screen, Input: input, Resume: resume})
}

// Pop removes and returns the most recent entry, or nil when empty.
func (s *Stack) Pop() *StackEntry {
	entry := s.Peek()
	if entry == nil {
		return nil
	}
	s.entries = s.entries[:len(s.entries)-1]
	return entry
}

// Peek returns a copy of the most recent entry without removing it.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	return &entry
}

// PopTo unwinds the stack to the most recent entry for screen and returns
// it, removing it too. It returns nil and leaves the stack alone if screen
// was never pushed.
func (s *Stack) PopTo(screen Screen) *StackEntry {
	for i, e := range slices.Backward(s.entries) {
		if e.Screen == screen {
			s.entries = s.entries[:i]
			return &e
		}
	}
	return nil
}

// Path returns the screens on the stack, oldest first.
func (s *Stack) Path() []Screen {
	path := make([]Screen, len(s.entries))
	for i, e := range s.entries {
		path[i] = e.Screen
	}
	return path
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) Len() int {
	return len(s.entries)
}

func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
