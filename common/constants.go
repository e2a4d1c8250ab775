package common

const (
	// BaseWidth and BaseHeight are the logical screen size in pixels.
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the number of pixels drawn per world unit.
	TileSize = 40

	// TicksPerSecond is the fixed simulation rate.
	TicksPerSecond = 60
)

// FixedStep is the simulation tick length in seconds.
const FixedStep = 1.0 / TicksPerSecond
