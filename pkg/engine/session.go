package engine

import "fmt"

// State is the phase of a play session.
type State int

const (
	Loading State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FrameResult reports what happened during one Step.
type FrameResult struct {
	Spawned      bool
	Passed       int // obstacles that left the bottom edge this frame
	Crashed      bool
	NewHighScore bool // only set together with Crashed
	Score        int
}

// Session owns everything a single player's run mutates: the car, the
// obstacles, the score and the cached high score. It is driven by one
// goroutine; only the attached Opponents may be written from elsewhere.
type Session struct {
	state      State
	car        Car
	obstacles  []Obstacle
	score      int
	highScore  int
	roadOffset float64
	spawner    *Spawner
	opponents  *Opponents
}

// NewSession returns a session in the Loading state.
// A nil spawner uses the default spawn chance with a random seed.
func NewSession(spawner *Spawner, opponents *Opponents) *Session {
	if spawner == nil {
		spawner = NewSpawner(nil, SpawnChance)
	}
	if opponents == nil {
		opponents = NewOpponents()
	}
	return &Session{
		state:     Loading,
		car:       NewCar(),
		spawner:   spawner,
		opponents: opponents,
	}
}

// Start leaves the Loading state. It has no effect once the session runs.
func (s *Session) Start() {
	if s.state == Loading {
		s.state = Running
	}
}

// Steer moves the car while the session is running. It returns the new x
// and whether the press was accepted, which is when it should be broadcast.
func (s *Session) Steer(d Direction) (float64, bool) {
	if s.state != Running {
		return s.car.X, false
	}
	moved := s.car.Steer(d)
	return s.car.X, moved
}

// Step advances one frame. The road scrolls, an obstacle may spawn and every
// obstacle falls. The first obstacle that hits the car ends the run and the
// rest of the pass is skipped; obstacles that fall past the bottom edge are
// dropped and scored.
func (s *Session) Step() FrameResult {
	var res FrameResult
	if s.state != Running {
		res.Score = s.score
		return res
	}

	s.roadOffset += RoadScrollStep
	for s.roadOffset >= DashPeriod {
		s.roadOffset -= DashPeriod
	}

	if o, ok := s.spawner.Spawn(); ok {
		s.obstacles = append(s.obstacles, o)
		res.Spawned = true
	}

	carBox := s.car.Bounds()
	kept := s.obstacles[:0]
	for i := range s.obstacles {
		o := s.obstacles[i]
		o.Y += ObstacleFallSpeed

		if Collides(carBox, o.Bounds()) {
			kept = append(kept, o)
			kept = append(kept, s.obstacles[i+1:]...)
			s.crash(&res)
			break
		}

		if o.Y > CanvasHeight {
			s.score += PointsPerObstacle
			res.Passed++
			continue
		}
		kept = append(kept, o)
	}
	s.obstacles = kept

	res.Score = s.score
	return res
}

func (s *Session) crash(res *FrameResult) {
	s.state = GameOver
	res.Crashed = true
	if s.score > s.highScore {
		s.highScore = s.score
		res.NewHighScore = true
	}
}

// Restart begins a fresh run after a crash.
func (s *Session) Restart() {
	s.score = 0
	s.obstacles = nil
	s.car = NewCar()
	s.state = Running
}

// SetHighScore replaces the cached high score, e.g. with the value fetched
// from the score service.
func (s *Session) SetHighScore(v int) {
	s.highScore = v
}

func (s *Session) State() State { return s.state }

func (s *Session) Score() int { return s.score }

func (s *Session) HighScore() int { return s.highScore }

func (s *Session) Car() Car { return s.car }

// RoadOffset is the scroll position of the lane markings in [0, DashPeriod).
func (s *Session) RoadOffset() float64 { return s.roadOffset }

func (s *Session) Opponents() *Opponents { return s.opponents }

// Obstacles returns a copy of the live obstacles in spawn order.
func (s *Session) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// ControlsVisible reports whether the restart and back controls should show.
func (s *Session) ControlsVisible() bool {
	return s.state == GameOver
}

// AddObstacle places an obstacle directly, bypassing the spawner.
func (s *Session) AddObstacle(o Obstacle) {
	s.obstacles = append(s.obstacles, o)
}
