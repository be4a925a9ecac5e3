package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for board operations.
var (
	// ErrOutOfBounds indicates a point outside 0 ≤ x < Width, 0 ≤ y < Height.
	ErrOutOfBounds = errors.New("board: point out of bounds")
	// ErrShape indicates the declared size disagrees with the stored cell data.
	ErrShape = errors.New("board: cell data does not match declared size")
	// ErrDuplicateRobot indicates two robots were registered with one ID.
	ErrDuplicateRobot = errors.New("board: duplicate robot id")
	// ErrBadSize indicates a non-positive width or height.
	ErrBadSize = errors.New("board: width and height must be positive")
	// ErrBadPoint indicates a point literal that is not "x,y".
	ErrBadPoint = errors.New("board: point must be formatted as x,y")
)

// Point is an integer board coordinate. It is comparable and used both as a
// board address and as the identity of a graph node.
type Point struct {
	X, Y int
}

// Origin is the bottom-left cell.
var Origin = Point{}

// Add returns p shifted by (dx,dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |p.X-q.X| + |p.Y-q.Y|.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// In reports whether p lies inside size.
func (p Point) In(size MapSize) bool {
	return p.X >= 0 && p.X < size.Width && p.Y >= 0 && p.Y < size.Height
}

// String formats p as "(x,y)".
func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// ParsePoint parses "x,y" (surrounding parentheses and spaces allowed).
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrBadPoint, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrBadPoint, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrBadPoint, s)
	}

	return Point{X: x, Y: y}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MapSize bounds the board: Width columns by Height rows.
type MapSize struct {
	Width, Height int
}

// Contains reports whether p is inside the map.
func (s MapSize) Contains(p Point) bool {
	return p.In(s)
}

// Cells returns Width*Height.
func (s MapSize) Cells() int {
	return s.Width * s.Height
}

// Index maps p to its row‑major index y*Width + x. p must be in bounds.
func (s MapSize) Index(p Point) int {
	return p.Y*s.Width + p.X
}

// PointAt converts a row‑major index back to a Point.
func (s MapSize) PointAt(idx int) Point {
	return Point{X: idx % s.Width, Y: idx / s.Width}
}

// Validate returns ErrBadSize unless both dimensions are positive.
func (s MapSize) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, s.Width, s.Height)
	}
	return nil
}

// String formats the size as "WxH".
func (s MapSize) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Booster is a collectible item lying on a cell.
type Booster uint8

const (
	// NoBooster marks a cell without a collectible.
	NoBooster Booster = iota
	// ExtraArm extends the robot's manipulator.
	ExtraArm
	// FastWheels doubles movement speed for a while.
	FastWheels
	// Drill lets the robot pass through obstacles for a while.
	Drill
	// Teleporter can be planted to create a fast-travel anchor.
	Teleporter
	// Clone spawns a new robot on a cloning point.
	Clone
	// CloningPoint is the location where Clone can be used.
	CloningPoint
)

var boosterChars = [...]byte{
	NoBooster:    0,
	ExtraArm:     'B',
	FastWheels:   'F',
	Drill:        'L',
	Teleporter:   'R',
	Clone:        'C',
	CloningPoint: 'S',
}

var boosterNames = [...]string{
	NoBooster:    "none",
	ExtraArm:     "extra-arm",
	FastWheels:   "fast-wheels",
	Drill:        "drill",
	Teleporter:   "teleporter",
	Clone:        "clone",
	CloningPoint: "cloning-point",
}

// Char returns the single-letter code of b, or 0 for NoBooster.
func (b Booster) Char() byte {
	if int(b) >= len(boosterChars) {
		return 0
	}
	return boosterChars[b]
}

// String returns a readable booster name.
func (b Booster) String() string {
	if int(b) >= len(boosterNames) {
		return "booster(" + strconv.Itoa(int(b)) + ")"
	}
	return boosterNames[b]
}

// BoosterFromChar maps a letter code to its Booster.
func BoosterFromChar(c byte) (Booster, bool) {
	for b := ExtraArm; int(b) < len(boosterChars); b++ {
		if boosterChars[b] == c {
			return b, true
		}
	}
	return NoBooster, false
}

// Cell is the state of one board position at a point in time.
type Cell struct {
	Point             Point
	Obstacle          bool    // permanently impassable unless drilled
	Wrapped           bool    // visited/painted by a robot
	TeleporterPlanted bool    // a teleporter anchor exists here
	Booster           Booster // NoBooster once collected
}

// HasBooster reports whether a collectible lies on the cell.
func (c Cell) HasBooster() bool {
	return c.Booster != NoBooster
}

// RobotID identifies one robot on the board.
type RobotID int

// String formats the id as "robot#N".
func (id RobotID) String() string {
	return "robot#" + strconv.Itoa(int(id))
}

// Ability is a bit set of capabilities a robot currently holds.
type Ability uint8

const (
	// AbilityDrill lets the robot move through obstacle cells.
	AbilityDrill Ability = 1 << iota
	// AbilityFastWheels marks a robot moving two cells per tick.
	AbilityFastWheels
)

// Robot is the part of the game-state model graph construction needs.
type Robot struct {
	ID        RobotID
	Position  Point
	Abilities Ability
}

// Has reports whether every bit of a is held by r.
func (r Robot) Has(a Ability) bool {
	return r.Abilities&a == a
}

// Snapshot is a read-only, point-in-time view of the board.
// Implementations must not change while a consumer holds them.
type Snapshot interface {
	// Size returns the declared map size.
	Size() MapSize
	// At returns the cell at p. ok is false when p is out of bounds
	// or the snapshot has no data for it.
	At(p Point) (c Cell, ok bool)
	// Robot returns the robot with the given id.
	Robot(id RobotID) (r Robot, ok bool)
	// Robots returns every robot, ordered by ID.
	Robots() []Robot
}
