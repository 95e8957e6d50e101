package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// CardHeight is the number of rows one reel card occupies, leaving room for
// the header and footer chrome.
func CardHeight(height int, hasStatus bool) int {
	if height <= 0 {
		return 12
	}
	chrome := 4
	if hasStatus {
		chrome += 2
	}
	h := height - chrome
	if h < 6 {
		h = 6
	}
	return h
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// Scroll animates the scroll offset from one position to another over a
// fixed number of frames.
type Scroll struct {
	From   float64
	To     float64
	Frame  int
	Frames int
}

func NewScroll(from, to float64, frames int) Scroll {
	if frames < 1 {
		frames = 1
	}
	return Scroll{From: from, To: to, Frames: frames}
}

func (s Scroll) Done() bool {
	return s.Frame >= s.Frames
}

func (s Scroll) Advance() Scroll {
	if !s.Done() {
		s.Frame++
	}
	return s
}

// Offset is the eased scroll position for the current frame.
func (s Scroll) Offset() float64 {
	if s.Frames <= 0 || s.Done() {
		return s.To
	}
	p := float64(s.Frame) / float64(s.Frames)
	var eased float64
	if p < 0.5 {
		eased = 4 * p * p * p
	} else {
		q := -2*p + 2
		eased = 1 - q*q*q/2
	}
	return s.From + (s.To-s.From)*eased
}

// Retarget continues an animation toward a new destination from the
// current position.
func (s Scroll) Retarget(to float64) Scroll {
	return NewScroll(s.Offset(), to, s.Frames)
}
