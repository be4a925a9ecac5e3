package board

import (
	"fmt"
	"sort"
)

// Grid is an in-memory board. It implements Snapshot.
//
// Cells are stored column-major: cols[x][y]. A Grid is not safe for
// concurrent mutation; hand consumers a Clone when the simulation keeps
// mutating the original.
type Grid struct {
	size   MapSize
	cols   [][]Cell
	robots []Robot // sorted by ID
}

var _ Snapshot = (*Grid)(nil)

// NewGrid returns a size.Width×size.Height board of empty cells and no robots.
// Returns ErrBadSize for non-positive dimensions.
func NewGrid(size MapSize) (*Grid, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	cols := make([][]Cell, size.Width)
	for x := range cols {
		col := make([]Cell, size.Height)
		for y := range col {
			col[y] = Cell{Point: Point{X: x, Y: y}}
		}
		cols[x] = col
	}

	return &Grid{size: size, cols: cols}, nil
}

// FromColumns wraps cols (indexed cols[x][y]) and robots as a Grid without
// checking that the data matches size. Use Validate to check it; graph
// builders reject inconsistent grids on their own.
// The slices are retained, not copied.
func FromColumns(size MapSize, cols [][]Cell, robots ...Robot) *Grid {
	g := &Grid{size: size, cols: cols, robots: append([]Robot(nil), robots...)}
	sort.SliceStable(g.robots, func(i, j int) bool { return g.robots[i].ID < g.robots[j].ID })

	return g
}

// Validate checks the grid's internal consistency:
//   - size is positive;
//   - there are exactly Width columns of exactly Height cells;
//   - each cell carries its own coordinate;
//   - robot IDs are unique and every robot stands inside the map.
func (g *Grid) Validate() error {
	if err := g.size.Validate(); err != nil {
		return err
	}
	if len(g.cols) != g.size.Width {
		return fmt.Errorf("%w: %d columns, want %d", ErrShape, len(g.cols), g.size.Width)
	}
	for x, col := range g.cols {
		if len(col) != g.size.Height {
			return fmt.Errorf("%w: column %d has %d cells, want %d", ErrShape, x, len(col), g.size.Height)
		}
		for y, c := range col {
			if c.Point != (Point{X: x, Y: y}) {
				return fmt.Errorf("%w: cell at (%d,%d) claims %v", ErrShape, x, y, c.Point)
			}
		}
	}
	for i, r := range g.robots {
		if i > 0 && g.robots[i-1].ID == r.ID {
			return fmt.Errorf("%w: %v", ErrDuplicateRobot, r.ID)
		}
		if !r.Position.In(g.size) {
			return fmt.Errorf("%w: %v at %v", ErrOutOfBounds, r.ID, r.Position)
		}
	}

	return nil
}

// Size returns the declared map size.
func (g *Grid) Size() MapSize { return g.size }

// At returns the cell at p, or false when p is outside the map or the
// column data is missing.
func (g *Grid) At(p Point) (Cell, bool) {
	if !p.In(g.size) || p.X >= len(g.cols) || p.Y >= len(g.cols[p.X]) {
		return Cell{}, false
	}
	return g.cols[p.X][p.Y], true
}

// Robot returns the robot registered under id.
func (g *Grid) Robot(id RobotID) (Robot, bool) {
	i := sort.Search(len(g.robots), func(i int) bool { return g.robots[i].ID >= id })
	if i < len(g.robots) && g.robots[i].ID == id {
		return g.robots[i], true
	}
	return Robot{}, false
}

// Robots returns a copy of all robots ordered by ID.
func (g *Grid) Robots() []Robot {
	return append([]Robot(nil), g.robots...)
}

// PlaceRobot adds r or replaces the robot with the same ID.
// Returns ErrOutOfBounds if r stands outside the map.
func (g *Grid) PlaceRobot(r Robot) error {
	if !r.Position.In(g.size) {
		return fmt.Errorf("%w: %v at %v", ErrOutOfBounds, r.ID, r.Position)
	}
	i := sort.Search(len(g.robots), func(i int) bool { return g.robots[i].ID >= r.ID })
	if i < len(g.robots) && g.robots[i].ID == r.ID {
		g.robots[i] = r
		return nil
	}
	g.robots = append(g.robots, Robot{})
	copy(g.robots[i+1:], g.robots[i:])
	g.robots[i] = r

	return nil
}

// Set overwrites the cell at c.Point.
func (g *Grid) Set(c Cell) error {
	cell, err := g.cell(c.Point)
	if err != nil {
		return err
	}
	*cell = c
	return nil
}

// SetObstacle marks or clears the obstacle at p.
func (g *Grid) SetObstacle(p Point, obstacle bool) error {
	cell, err := g.cell(p)
	if err != nil {
		return err
	}
	cell.Obstacle = obstacle
	return nil
}

// Wrap marks p as wrapped.
func (g *Grid) Wrap(p Point) error {
	cell, err := g.cell(p)
	if err != nil {
		return err
	}
	cell.Wrapped = true
	return nil
}

// PlantTeleporter records a teleporter anchor at p.
func (g *Grid) PlantTeleporter(p Point) error {
	cell, err := g.cell(p)
	if err != nil {
		return err
	}
	cell.TeleporterPlanted = true
	return nil
}

// PlaceBooster puts b on p.
func (g *Grid) PlaceBooster(p Point, b Booster) error {
	cell, err := g.cell(p)
	if err != nil {
		return err
	}
	cell.Booster = b
	return nil
}

// CollectBooster removes and returns the booster at p.
func (g *Grid) CollectBooster(p Point) (Booster, error) {
	cell, err := g.cell(p)
	if err != nil {
		return NoBooster, err
	}
	b := cell.Booster
	cell.Booster = NoBooster

	return b, nil
}

// Clone returns a deep copy that shares nothing with g.
func (g *Grid) Clone() *Grid {
	cols := make([][]Cell, len(g.cols))
	for x, col := range g.cols {
		cols[x] = append([]Cell(nil), col...)
	}

	return &Grid{size: g.size, cols: cols, robots: append([]Robot(nil), g.robots...)}
}

func (g *Grid) cell(p Point) (*Cell, error) {
	if !p.In(g.size) || p.X >= len(g.cols) || p.Y >= len(g.cols[p.X]) {
		return nil, fmt.Errorf("%w: %v on %v board", ErrOutOfBounds, p, g.size)
	}
	return &g.cols[p.X][p.Y], nil
}
