package geom

// Rect is a mutable rectangle: a position plus a size in cells
type Rect struct {
	X, Y int
	W, H int
}

// New creates a rectangle at (x, y) with the given dimensions
func New(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the leftmost column
func (r Rect) Left() int {
	return r.X
}

// Top returns the topmost row
func (r Rect) Top() int {
	return r.Y
}

// Right returns the rightmost column still inside the rectangle
func (r Rect) Right() int {
	return r.X + r.W - 1
}

// Bottom returns the bottommost row still inside the rectangle
func (r Rect) Bottom() int {
	return r.Y + r.H - 1
}

// Empty returns true if the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles
// A zero-size rectangle is returned when they do not overlap
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	x2 := min(r.X+r.W, o.X+o.W)
	y2 := min(r.Y+r.H, o.Y+o.H)
	if x2 <= x || y2 <= y {
		return Rect{X: x, Y: y}
	}
	return Rect{X: x, Y: y, W: x2 - x, H: y2 - y}
}

// MoveTo sets the rectangle position, keeping its size
func (r *Rect) MoveTo(x, y int) {
	r.X = x
	r.Y = y
}

// SetSize sets the rectangle dimensions, keeping its position
func (r *Rect) SetSize(w, h int) {
	r.W = w
	r.H = h
}
