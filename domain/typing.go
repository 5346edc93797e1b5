package domain

// TypingSet tracks who is currently signaling "typing" in the public scope.
// Start and Stop report whether membership actually changed, letting the
// caller emit typing transitions exactly once: a start while already typing
// or a stop while not typing is a no-op.
type TypingSet struct {
	order []Username
	index map[string]struct{}
}

func NewTypingSet() *TypingSet {
	return &TypingSet{index: make(map[string]struct{})}
}

// Start marks the user as typing. Returns false if they already were.
func (t *TypingSet) Start(u Username) bool {
	if _, ok := t.index[u.Key()]; ok {
		return false
	}
	t.index[u.Key()] = struct{}{}
	t.order = append(t.order, u)
	return true
}

// Stop clears the user's typing state. Returns false if they were not typing.
func (t *TypingSet) Stop(u Username) bool {
	if _, ok := t.index[u.Key()]; !ok {
		return false
	}
	delete(t.index, u.Key())
	for i, name := range t.order {
		if name.Key() == u.Key() {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the currently typing users in the order they started.
func (t *TypingSet) Active() []Username {
	return append([]Username(nil), t.order...)
}
