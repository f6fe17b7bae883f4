package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is one of the four tile colors.
type Color int

const (
	ColorYellow Color = iota
	ColorRed
	ColorBlue
	ColorBlack
)

const (
	// NumColors is the number of distinct tile colors.
	NumColors = 4
	// MinValue and MaxValue bound the numeric face of a tile.
	MinValue = 1
	MaxValue = 13
	// Copies is how many physical tiles exist per color and value.
	Copies = 2
)

// colorCodes maps Color to its descriptor letter; index == Color.
const colorCodes = "yrbk"

// Letter returns the lower-case descriptor letter of the color.
func (c Color) Letter() byte {
	if c < 0 || int(c) >= len(colorCodes) {
		return '?'
	}
	return colorCodes[c]
}

func (c Color) String() string {
	switch c {
	case ColorYellow:
		return "yellow"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorBlack:
		return "black"
	default:
		return "unknown"
	}
}

// Location tells where a tile currently is: a player's hand (seat 0..5), the
// pool, or a published yard.
type Location int

const (
	// MaxSeats is the number of hand slots a Location can address.
	MaxSeats = 6

	LocationPool  Location = 6
	LocationYards Location = 7
)

// HandLocation returns the Location of the given seat's hand.
func HandLocation(seat int) Location {
	return Location(seat)
}

// IsHand reports whether the location is a player hand slot.
func (l Location) IsHand() bool {
	return l >= 0 && l < MaxSeats
}

// ErrInvalidTileCode is returned when a tile code cannot be parsed.
var ErrInvalidTileCode = errors.New("invalid tile code")

// Descriptor is the color+value form of a tile, e.g. "y09". It ignores the
// copy index and is what candidate matching compares.
type Descriptor string

// DescriptorOf formats a descriptor for a color and value.
func DescriptorOf(c Color, value int) Descriptor {
	return Descriptor(fmt.Sprintf("%c%02d", c.Letter(), value))
}

// TileKey is the immutable identity of a physical tile.
type TileKey struct {
	Color Color
	Value int
	Index int
}

// Tile is a single physical game piece. Only Location changes over its life.
type Tile struct {
	Color    Color
	Value    int
	Location Location
	Index    int
}

// NewTile creates a tile at the given location.
func NewTile(c Color, value int, loc Location, index int) *Tile {
	return &Tile{Color: c, Value: value, Location: loc, Index: index}
}

// Key returns the identity used for sets and maps. Location is left out on
// purpose: it mutates while the tile moves.
func (t *Tile) Key() TileKey {
	return TileKey{Color: t.Color, Value: t.Value, Index: t.Index}
}

// Descriptor returns the color+value descriptor of the tile.
func (t *Tile) Descriptor() Descriptor {
	return DescriptorOf(t.Color, t.Value)
}

// SameFace reports whether both tiles have the same color and value.
func (t *Tile) SameFace(o *Tile) bool {
	return t.Color == o.Color && t.Value == o.Value
}

func (t *Tile) String() string {
	return string(t.Descriptor())
}

// ParseTile parses codes such as "y9", "Y09" or "k12" into a pool tile with
// copy index 0.
func ParseTile(code string) (*Tile, error) {
	return ParseTileAt(code, LocationPool, 0)
}

// ParseTileAt parses a tile code and places the tile at loc with the given
// copy index.
func ParseTileAt(code string, loc Location, index int) (*Tile, error) {
	c, v, err := parseCode(code)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= Copies {
		return nil, fmt.Errorf("%w: %q copy index %d", ErrInvalidTileCode, code, index)
	}
	return NewTile(c, v, loc, index), nil
}

// ParseDescriptor parses a tile code and returns its normalized descriptor.
func ParseDescriptor(code string) (Descriptor, error) {
	c, v, err := parseCode(code)
	if err != nil {
		return "", err
	}
	return DescriptorOf(c, v), nil
}

// MustParseTile is ParseTile for fixtures; it panics on malformed codes.
func MustParseTile(code string) *Tile {
	t, err := ParseTile(code)
	if err != nil {
		panic(err)
	}
	return t
}

// MustParseTiles parses a list of codes with MustParseTile.
func MustParseTiles(codes ...string) []*Tile {
	tiles := make([]*Tile, 0, len(codes))
	for _, code := range codes {
		tiles = append(tiles, MustParseTile(code))
	}
	return tiles
}

func parseCode(code string) (Color, int, error) {
	if len(code) < 2 || len(code) > 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTileCode, code)
	}
	idx := strings.IndexByte(colorCodes, lower(code[0]))
	if idx < 0 {
		return 0, 0, fmt.Errorf("%w: %q unknown color", ErrInvalidTileCode, code)
	}
	digits := code[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, fmt.Errorf("%w: %q value is not numeric", ErrInvalidTileCode, code)
		}
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTileCode, code)
	}
	if v < MinValue || v > MaxValue {
		return 0, 0, fmt.Errorf("%w: %q value out of range", ErrInvalidTileCode, code)
	}
	return Color(idx), v, nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// TilesValue sums the values of the given tiles.
func TilesValue(tiles []*Tile) int {
	sum := 0
	for _, t := range tiles {
		sum += t.Value
	}
	return sum
}

// Descriptors returns the descriptors of the tiles in order.
func Descriptors(tiles []*Tile) []Descriptor {
	out := make([]Descriptor, len(tiles))
	for i, t := range tiles {
		out[i] = t.Descriptor()
	}
	return out
}
