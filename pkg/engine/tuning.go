package engine

// Playfield dimensions in logical pixels.
const (
	CanvasWidth  = 400.0
	CanvasHeight = 600.0
	LaneMargin   = 50.0
)

// Player car.
const (
	CarWidth  = 50.0
	CarHeight = 80.0
	CarSpeed  = 15.0 // per accepted key press
	CarStartX = CanvasWidth/2 - CarWidth/2
	CarStartY = CanvasHeight - 100

	// LaneMin and LaneMax bound the car's left edge.
	LaneMin = LaneMargin
	LaneMax = CanvasWidth - CarWidth - LaneMargin
)

// Obstacles.
const (
	ObstacleSize      = 50.0
	ObstacleStartY    = -50.0
	ObstacleFallSpeed = 1.5
	SpawnChance       = 0.005
	PointsPerObstacle = 10
)

// Road markings.
const (
	RoadScrollStep = 3.0
	DashPeriod     = 100.0
	DashWidth      = 10.0
	DashLength     = 50.0
	DashCount      = 10
)

// OpponentY is where remote cars are drawn; only x travels over the wire.
const OpponentY = CanvasHeight - 100
