package generate

import (
	"fmt"
	"math/rand"
)

// Style selects the map generator.
type Style uint8

const (
	// StyleScatter toggles random cells of an open field.
	StyleScatter Style = iota
	// StyleBSP carves rooms and corridors out of solid rock.
	StyleBSP
)

func (s Style) String() string {
	switch s {
	case StyleScatter:
		return "scatter"
	case StyleBSP:
		return "bsp"
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// ParseStyle parses "scatter" or "bsp".
func ParseStyle(s string) (Style, error) {
	switch s {
	case "scatter":
		return StyleScatter, nil
	case "bsp":
		return StyleBSP, nil
	}
	return StyleScatter, fmt.Errorf("unknown map style %q", s)
}

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one map.
type Config struct {
	MapWidth, MapHeight int
	Style               Style

	// Scatter
	Walls int // number of random toggles

	// BSP
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle

	Rand *rand.Rand
}

// DefaultConfig returns a scatter map of the given size with the BSP knobs
// set to values that work for maps of 30x30 and up.
func DefaultConfig(width, height int, rng *rand.Rand) *Config {
	return &Config{
		MapWidth:    width,
		MapHeight:   height,
		Style:       StyleScatter,
		Walls:       100,
		MinLeafSize: 6,
		MaxLeafSize: 16,
		MinRoomSize: 3,
		RoomPadding: 1,
		Rand:        rng,
	}
}
