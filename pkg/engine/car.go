package engine

// Direction is a horizontal steering input.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Car is the locally controlled player car.
type Car struct {
	X, Y float64
}

// NewCar returns a car parked at the start position.
func NewCar() Car {
	return Car{X: CarStartX, Y: CarStartY}
}

// Bounds returns the car's hit box.
func (c Car) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, W: CarWidth, H: CarHeight}
}

// MoveLeft shifts the car one step left, stopping at the lane margin.
// It reports whether the position changed.
func (c *Car) MoveLeft() bool {
	x := max(LaneMin, c.X-CarSpeed)
	if x == c.X {
		return false
	}
	c.X = x
	return true
}

// MoveRight shifts the car one step right, stopping at the lane margin.
// It reports whether the position changed.
func (c *Car) MoveRight() bool {
	x := min(LaneMax, c.X+CarSpeed)
	if x == c.X {
		return false
	}
	c.X = x
	return true
}

// Steer applies d and reports whether the car moved.
func (c *Car) Steer(d Direction) bool {
	switch d {
	case Left:
		return c.MoveLeft()
	case Right:
		return c.MoveRight()
	}
	return false
}
