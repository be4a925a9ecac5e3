package boardgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/boardpath/board"
)

// Builder derives per-robot traversal graphs from board snapshots.
//
// The reference board fixes the topology once: map size, the in-bounds
// neighbour table and the set of obstacles the map started with. Each Build
// then reads the current snapshot only; nothing is cached between builds.
// A Builder is immutable after NewBuilder and safe for concurrent use.
type Builder struct {
	size board.MapSize
	opts Options

	// nbrStart[i]..nbrStart[i+1] indexes nbr for cell i (row‑major).
	// nbr holds in-bounds neighbour cell indices in offset order.
	nbrStart []int32
	nbr      []int32

	fixed []bool // obstacle cells of the reference board
}

// NewBuilder records the reference topology of ref.
// Returns ErrNilSnapshot for a nil ref and ErrInvalidBoard if ref's cell
// data does not match its declared size or ref fails its own Validate.
// Complexity: O(W×H×d) time and memory, d = 4 or 8.
func NewBuilder(ref board.Snapshot, opts ...Option) (*Builder, error) {
	if ref == nil {
		return nil, ErrNilSnapshot
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	size := ref.Size()
	if err := size.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	if err := selfCheck(ref); err != nil {
		return nil, err
	}
	n := size.Cells()
	b := &Builder{
		size:     size,
		opts:     o,
		nbrStart: make([]int32, n+1),
		fixed:    make([]bool, n),
	}

	deltas := o.Conn.offsets()
	b.nbr = make([]int32, 0, n*len(deltas))
	for i := 0; i < n; i++ {
		p := size.PointAt(i)
		c, err := cellAt(ref, p)
		if err != nil {
			return nil, err
		}
		b.fixed[i] = c.Obstacle
		for _, d := range deltas {
			q := p.Add(d[0], d[1])
			if q.In(size) {
				b.nbr = append(b.nbr, int32(size.Index(q)))
			}
		}
		b.nbrStart[i+1] = int32(len(b.nbr))
	}

	return b, nil
}

// Size returns the reference map size.
func (b *Builder) Size() board.MapSize { return b.size }

// Options returns the builder configuration.
func (b *Builder) Options() Options { return b.opts }

// FixedObstacle reports whether p was an obstacle on the reference board.
// Out-of-bounds points report false.
func (b *Builder) FixedObstacle(p board.Point) bool {
	return p.In(b.size) && b.fixed[b.size.Index(p)]
}

// Build derives the traversal graph of robot id over snap.
//
// Behavior:
//  1. Validate snap against the reference topology and its own Validate.
//  2. Look up the robot; its position must be in bounds and passable.
//  3. Number every passable cell in row‑major order.
//  4. Link each node to its passable neighbours in offset order, applying
//     the optional move rule and cost function.
//
// Returns ErrNilSnapshot, ErrInvalidBoard (possibly wrapping ErrUnknownRobot
// or board.ErrOutOfBounds) or ErrBadCost. ErrBadCost covers costs of zero
// or less and costs above math.MaxInt64 / nodes, the bound under which no
// path cost can overflow. snap is never modified.
//
// Complexity: O(W×H×d) time, O(W×H + E) memory.
func (b *Builder) Build(id board.RobotID, snap board.Snapshot) (*Graph, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if got := snap.Size(); got != b.size {
		return nil, fmt.Errorf("%w: snapshot size %v, reference %v", ErrInvalidBoard, got, b.size)
	}
	if err := selfCheck(snap); err != nil {
		return nil, err
	}
	robot, ok := snap.Robot(id)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidBoard, ErrUnknownRobot, id)
	}
	if !robot.Position.In(b.size) {
		return nil, fmt.Errorf("%w: %w: %v at %v", ErrInvalidBoard, board.ErrOutOfBounds, id, robot.Position)
	}

	n := b.size.Cells()
	g := &Graph{
		robot:    robot,
		size:     b.size,
		conn:     b.opts.Conn,
		directed: b.opts.Move != nil,
		weighted: b.opts.Cost != nil,
		nodeOf:   make([]int32, n),
	}

	// Pass 1: node set.
	needCells := b.opts.Move != nil || b.opts.Cost != nil
	var cells []board.Cell
	if needCells {
		cells = make([]board.Cell, n)
	}
	for i := 0; i < n; i++ {
		c, err := cellAt(snap, b.size.PointAt(i))
		if err != nil {
			return nil, err
		}
		if needCells {
			cells[i] = c
		}
		if !b.opts.Passable(c, robot) {
			g.nodeOf[i] = -1
			continue
		}
		g.nodeOf[i] = int32(len(g.points))
		g.points = append(g.points, c.Point)
	}
	if g.nodeOf[b.size.Index(robot.Position)] < 0 {
		return nil, fmt.Errorf("%w: %v stands on impassable cell %v", ErrInvalidBoard, id, robot.Position)
	}

	// Pass 2: adjacency in CSR form.
	g.offsets = make([]int32, len(g.points)+1)
	g.targets = make([]int32, 0, len(g.points)*len(b.opts.Conn.offsets()))
	var maxCost int64
	if g.weighted {
		g.weights = make([]int64, 0, cap(g.targets))
		maxCost = math.MaxInt64 / int64(len(g.points))
	}
	for u, p := range g.points {
		ui := b.size.Index(p)
		for _, vi := range b.nbr[b.nbrStart[ui]:b.nbrStart[ui+1]] {
			v := g.nodeOf[vi]
			if v < 0 {
				continue
			}
			if g.directed && !b.opts.Move(cells[ui], cells[vi], robot) {
				continue
			}
			if g.weighted {
				w := b.opts.Cost(cells[vi], robot)
				if w <= 0 || w > maxCost {
					return nil, fmt.Errorf("%w: entering %v costs %d", ErrBadCost, cells[vi].Point, w)
				}
				g.weights = append(g.weights, w)
			}
			g.targets = append(g.targets, v)
		}
		g.offsets[u+1] = int32(len(g.targets))
	}

	return g, nil
}

// selfCheck runs s.Validate when s offers one. A Grid with surplus columns
// or rows passes every At lookup but fails here.
func selfCheck(s board.Snapshot) error {
	v, ok := s.(interface{ Validate() error })
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	return nil
}

// cellAt reads p from s, reporting missing or mislabelled cells as ErrInvalidBoard.
func cellAt(s board.Snapshot, p board.Point) (board.Cell, error) {
	c, ok := s.At(p)
	if !ok {
		return board.Cell{}, fmt.Errorf("%w: no cell data at %v for size %v", ErrInvalidBoard, p, s.Size())
	}
	if c.Point != p {
		return board.Cell{}, fmt.Errorf("%w: cell at %v claims %v", ErrInvalidBoard, p, c.Point)
	}
	return c, nil
}
