package engine

import "math/rand/v2"

// Obstacle is a falling block. It has no identity beyond its slot in the session.
type Obstacle struct {
	X, Y float64
}

// Bounds returns the obstacle's hit box.
func (o Obstacle) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, W: ObstacleSize, H: ObstacleSize}
}

// Spawner decides once per frame whether a new obstacle appears.
type Spawner struct {
	rng    *rand.Rand
	chance float64
}

// NewSpawner returns a spawner that fires with the given per-frame probability.
// A nil rng falls back to a randomly seeded source.
func NewSpawner(rng *rand.Rand, chance float64) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Spawner{rng: rng, chance: chance}
}

// Spawn rolls for a new obstacle. Spawned obstacles start just above the
// canvas with x uniform in [LaneMargin, CanvasWidth-2*LaneMargin-ObstacleSize).
func (s *Spawner) Spawn() (Obstacle, bool) {
	if s.rng.Float64() >= s.chance {
		return Obstacle{}, false
	}
	x := LaneMargin + s.rng.Float64()*(CanvasWidth-2*LaneMargin-ObstacleSize)
	return Obstacle{X: x, Y: ObstacleStartY}, true
}
