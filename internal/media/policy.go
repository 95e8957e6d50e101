package media

import "sync/atomic"

// Policy models the autoplay restriction shared by every element of a feed:
// until Gesture is called only muted playback may start programmatically.
type Policy struct {
	gestured atomic.Bool
}

func NewPolicy() *Policy {
	return &Policy{}
}

func (p *Policy) Gesture() {
	if p != nil {
		p.gestured.Store(true)
	}
}

func (p *Policy) Allows(muted bool) bool {
	if p == nil || muted {
		return true
	}
	return p.gestured.Load()
}
