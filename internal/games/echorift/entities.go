package echorift

import "github.com/vovakirdan/echorift/internal/core"

// Obstacle is a rectangular hazard scrolling toward the player.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Scored        bool // Set once the exit point was awarded
}

// Box returns the obstacle's hitbox.
func (o Obstacle) Box() core.Box {
	return core.Box{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// OffScreen reports whether the obstacle has fully left through the left edge.
func (o Obstacle) OffScreen() bool {
	return o.X+o.Width < 0
}

// Crystal is a circular shard pickup. X and Y are its center.
type Crystal struct {
	X, Y   float64
	Radius float64
}

// Box returns the crystal's bounding box.
func (c Crystal) Box() core.Box {
	return core.BoxAround(c.X, c.Y, c.Radius)
}

// OffScreen reports whether the crystal has fully left through the left edge.
func (c Crystal) OffScreen() bool {
	return c.X+c.Radius < 0
}
