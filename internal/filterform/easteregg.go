package filterform

import "sync"

// EasterEggPhrase is the text query that flips the easter egg instead of filtering.
const EasterEggPhrase = "Somebody once?"

// EasterEgg is the on/off flag shared by one list view's filter form and
// its rendering. It is safe for concurrent use.
type EasterEgg struct {
	mu sync.Mutex
	on bool
}

// Toggle flips the flag and returns the new state.
func (e *EasterEgg) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.on = !e.on
	return e.on
}

func (e *EasterEgg) IsOn() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.on
}
