package viewport

import "math"

// Geometry describes a scroll container holding equally sized items.
type Geometry struct {
	ViewportHeight float64
	ItemHeight     float64
	ScrollTop      float64
}

// Ratio is the visible fraction of item index.
func (g Geometry) Ratio(index int) float64 {
	if g.ItemHeight <= 0 || g.ViewportHeight <= 0 {
		return 0
	}
	top := float64(index) * g.ItemHeight
	bottom := top + g.ItemHeight
	visible := math.Min(bottom, g.ScrollTop+g.ViewportHeight) - math.Max(top, g.ScrollTop)
	if visible <= 0 {
		return 0
	}
	return math.Min(1, visible/g.ItemHeight)
}

// Intersections reports every item of n that is at least partly visible.
func (g Geometry) Intersections(n int) []Intersection {
	if g.ItemHeight <= 0 || n <= 0 {
		return nil
	}
	first := int(math.Floor(g.ScrollTop / g.ItemHeight))
	last := int(math.Ceil((g.ScrollTop + g.ViewportHeight) / g.ItemHeight))
	out := make([]Intersection, 0, 2)
	for i := max(first, 0); i <= last && i < n; i++ {
		if r := g.Ratio(i); r > 0 {
			out = append(out, Intersection{Index: i, Ratio: r})
		}
	}
	return out
}

func (g Geometry) Scroll() Scroll {
	return Scroll{Top: g.ScrollTop, ItemHeight: g.ItemHeight}
}
