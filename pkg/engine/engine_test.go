package engine

import (
	"math/rand/v2"
	"sync"
	"testing"
)

func quietSession() *Session {
	s := NewSession(NewSpawner(rand.New(rand.NewPCG(1, 2)), 0), nil)
	s.Start()
	return s
}

func TestCollides(t *testing.T) {
	car := Rect{X: 175, Y: 500, W: 50, H: 80}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 180, Y: 470, W: 50, H: 50}, true},
		{"contained", Rect{X: 185, Y: 510, W: 10, H: 10}, true},
		{"touching left edge", Rect{X: 125, Y: 500, W: 50, H: 50}, false},
		{"touching right edge", Rect{X: 225, Y: 500, W: 50, H: 50}, false},
		{"touching top edge", Rect{X: 175, Y: 450, W: 50, H: 50}, false},
		{"touching bottom edge", Rect{X: 175, Y: 580, W: 50, H: 50}, false},
		{"apart", Rect{X: 0, Y: 0, W: 10, H: 10}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collides(car, tc.b); got != tc.want {
				t.Fatalf("Collides(car, %v) = %v, want %v", tc.b, got, tc.want)
			}
			if Collides(car, tc.b) != Collides(tc.b, car) {
				t.Fatalf("Collides not symmetric for %v", tc.b)
			}
		})
	}
}

func TestCollidesSymmetric(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 1000; i++ {
		a := Rect{X: r.Float64() * 400, Y: r.Float64() * 600, W: r.Float64() * 100, H: r.Float64() * 100}
		b := Rect{X: r.Float64() * 400, Y: r.Float64() * 600, W: r.Float64() * 100, H: r.Float64() * 100}
		if Collides(a, b) != Collides(b, a) {
			t.Fatalf("asymmetric result for %v and %v", a, b)
		}
	}
}

func TestCarMovesAreClamped(t *testing.T) {
	for x := LaneMin; x <= LaneMax; x += 5 {
		c := Car{X: x, Y: CarStartY}
		c.MoveLeft()
		if want := max(LaneMin, x-CarSpeed); c.X != want {
			t.Fatalf("left from %v: got %v, want %v", x, c.X, want)
		}

		c = Car{X: x, Y: CarStartY}
		c.MoveRight()
		if want := min(LaneMax, x+CarSpeed); c.X != want {
			t.Fatalf("right from %v: got %v, want %v", x, c.X, want)
		}
	}
}

func TestCarReportsOnlyRealMoves(t *testing.T) {
	c := NewCar()
	if c.X != 175 {
		t.Fatalf("start x = %v, want 175", c.X)
	}
	moves := 0
	for c.MoveLeft() {
		moves++
	}
	if c.X != LaneMin {
		t.Fatalf("x = %v after pressing left, want %v", c.X, LaneMin)
	}
	// 175 -> 55 in eight steps, then a clamped step to 50.
	if moves != 9 {
		t.Fatalf("accepted %d left moves, want 9", moves)
	}
	if c.Steer(Left) {
		t.Fatal("left press at the margin was accepted")
	}
	if !c.Steer(Right) || c.X != 65 {
		t.Fatalf("right press from margin gave x = %v", c.X)
	}
}

func TestSpawner(t *testing.T) {
	never := NewSpawner(rand.New(rand.NewPCG(1, 1)), 0)
	always := NewSpawner(rand.New(rand.NewPCG(1, 1)), 1)
	for i := 0; i < 500; i++ {
		if _, ok := never.Spawn(); ok {
			t.Fatal("spawned with zero chance")
		}
		o, ok := always.Spawn()
		if !ok {
			t.Fatal("did not spawn with chance 1")
		}
		if o.Y != ObstacleStartY {
			t.Fatalf("spawn y = %v", o.Y)
		}
		if o.X < LaneMargin || o.X >= CanvasWidth-2*LaneMargin {
			t.Fatalf("spawn x = %v out of range", o.X)
		}
	}
}

func TestSpawnerRate(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewPCG(3, 4)), SpawnChance)
	n := 0
	const frames = 200000
	for i := 0; i < frames; i++ {
		if _, ok := s.Spawn(); ok {
			n++
		}
	}
	// Expect about 1000.
	if n < 800 || n > 1200 {
		t.Fatalf("spawned %d obstacles in %d frames", n, frames)
	}
}

func TestLoadingIgnoresInputAndFrames(t *testing.T) {
	s := NewSession(NewSpawner(nil, 1), nil)
	if _, ok := s.Steer(Left); ok {
		t.Fatal("steer accepted while loading")
	}
	if res := s.Step(); res.Spawned || len(s.Obstacles()) != 0 {
		t.Fatal("step ran while loading")
	}
	s.Start()
	if s.State() != Running {
		t.Fatalf("state = %v after Start", s.State())
	}
}

func TestSteerReportsNewX(t *testing.T) {
	s := quietSession()
	x, ok := s.Steer(Right)
	if !ok || x != 190 {
		t.Fatalf("Steer(Right) = %v, %v", x, ok)
	}
}

func TestObstaclePassingBottomScores(t *testing.T) {
	s := quietSession()
	s.AddObstacle(Obstacle{X: 50, Y: 599})

	res := s.Step()
	if res.Passed != 1 || res.Score != PointsPerObstacle || s.Score() != 10 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(s.Obstacles()) != 0 {
		t.Fatal("passed obstacle was kept")
	}
	if s.State() != Running {
		t.Fatalf("state = %v", s.State())
	}
}

func TestCollisionEndsRun(t *testing.T) {
	s := quietSession()
	s.AddObstacle(Obstacle{X: 175, Y: 450})

	res := s.Step()
	if !res.Crashed {
		t.Fatal("expected crash")
	}
	if res.NewHighScore {
		t.Fatal("zero score should not beat zero high score")
	}
	if s.State() != GameOver || !s.ControlsVisible() {
		t.Fatalf("state = %v", s.State())
	}
	if _, ok := s.Steer(Left); ok {
		t.Fatal("steer accepted after game over")
	}

	before := s.Obstacles()
	if res := s.Step(); res.Crashed || res.Passed != 0 {
		t.Fatalf("step after game over did work: %+v", res)
	}
	after := s.Obstacles()
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatal("obstacles moved after game over")
	}
}

func TestFirstCollisionStopsPass(t *testing.T) {
	s := quietSession()
	s.AddObstacle(Obstacle{X: 50, Y: 599})  // passes
	s.AddObstacle(Obstacle{X: 180, Y: 460}) // hits
	s.AddObstacle(Obstacle{X: 50, Y: 599})  // never reached

	res := s.Step()
	if !res.Crashed || res.Passed != 1 || res.Score != 10 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.NewHighScore || s.HighScore() != 10 {
		t.Fatalf("high score = %d, new = %v", s.HighScore(), res.NewHighScore)
	}

	obs := s.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("kept %d obstacles, want 2", len(obs))
	}
	if obs[0].Y != 461.5 {
		t.Fatalf("colliding obstacle y = %v", obs[0].Y)
	}
	if obs[1].Y != 599 {
		t.Fatalf("obstacle after the hit advanced to %v", obs[1].Y)
	}
}

func TestCachedHighScoreSuppressesSubmission(t *testing.T) {
	s := quietSession()
	s.SetHighScore(100)
	s.AddObstacle(Obstacle{X: 50, Y: 599})
	s.Step()
	s.AddObstacle(Obstacle{X: 175, Y: 450})
	res := s.Step()
	if !res.Crashed || res.NewHighScore || s.HighScore() != 100 {
		t.Fatalf("unexpected %+v high=%d", res, s.HighScore())
	}
}

func TestRestart(t *testing.T) {
	s := quietSession()
	s.Steer(Left)
	s.AddObstacle(Obstacle{X: 50, Y: 599})
	s.Step()
	s.AddObstacle(Obstacle{X: 160, Y: 450})
	s.Step()
	if s.State() != GameOver {
		t.Fatal("expected game over")
	}

	s.Restart()
	if s.State() != Running || s.ControlsVisible() {
		t.Fatalf("state = %v after restart", s.State())
	}
	if s.Score() != 0 || len(s.Obstacles()) != 0 {
		t.Fatalf("score %d, %d obstacles after restart", s.Score(), len(s.Obstacles()))
	}
	if s.Car() != NewCar() {
		t.Fatalf("car = %+v after restart", s.Car())
	}
	if s.HighScore() != 10 {
		t.Fatalf("restart cleared the high score: %d", s.HighScore())
	}
}

func TestRoadOffsetWraps(t *testing.T) {
	s := quietSession()
	for i := 0; i < 34; i++ {
		s.Step()
	}
	if got := s.RoadOffset(); got != 2 {
		t.Fatalf("offset = %v, want 2", got)
	}
}

func TestFallingObstacleTimeline(t *testing.T) {
	// Spawned at x=120 the block clears a car parked at the start position.
	s := quietSession()
	s.AddObstacle(Obstacle{X: 120, Y: ObstacleStartY})
	frames := 0
	for s.Score() == 0 {
		if res := s.Step(); res.Crashed {
			t.Fatalf("unexpected crash at frame %d", frames)
		}
		frames++
	}
	if frames != 434 {
		t.Fatalf("scored after %d frames, want 434", frames)
	}

	// One step left puts the car in its path; it hits once y passes 450.
	s = quietSession()
	s.Steer(Left)
	s.AddObstacle(Obstacle{X: 120, Y: ObstacleStartY})
	frames = 0
	for s.State() == Running {
		s.Step()
		frames++
	}
	if frames != 334 {
		t.Fatalf("crashed after %d frames, want 334", frames)
	}
	if y := s.Obstacles()[0].Y; y <= 450 || y >= 580 {
		t.Fatalf("crash at y = %v", y)
	}
}

func TestOpponents(t *testing.T) {
	o := NewOpponents()
	o.Move("b", 120)
	o.Move("a", 60)
	o.Move("b", 135)

	snap := o.Snapshot()
	if len(snap) != 2 || snap[0].ID != "a" || snap[1].ID != "b" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap[1].X != 135 || snap[1].Y != OpponentY {
		t.Fatalf("b = %+v", snap[1])
	}

	o.Remove("b")
	o.Remove("missing")
	if _, ok := o.Get("b"); ok || o.Len() != 1 {
		t.Fatal("b still present after Remove")
	}
}

func TestOpponentsConcurrentAccess(t *testing.T) {
	o := NewOpponents()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			for j := 0; j < 200; j++ {
				o.Move(id, float64(j))
				_ = o.Snapshot()
			}
			o.Remove(id)
		}(i)
	}
	wg.Wait()
	if o.Len() != 0 {
		t.Fatalf("%d opponents left", o.Len())
	}
}
