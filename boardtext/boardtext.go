// Package boardtext reads and draws boards in a compact ASCII form used by
// fixtures, tests and the boardpath CLI.
//
// Format (top line is the highest row, the last line is y = 0):
//
//	. . X .
//	. X X .
//	@ . . B
//
//	X  obstacle           .  empty
//	w  wrapped            @  robot 0 start
//	*  teleporter planted (implies wrapped)
//	B F L R C S           booster on an empty cell
//
// Whitespace inside a line is ignored and blank lines are dropped.
package boardtext

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/katalvlaran/boardpath/board"
)

// Sentinel errors returned by Parse.
var (
	// ErrEmpty indicates the text contains no board lines.
	ErrEmpty = errors.New("boardtext: no board lines")
	// ErrRagged indicates lines of differing lengths.
	ErrRagged = errors.New("boardtext: inconsistent map line lengths")
	// ErrUnknownChar indicates an unsupported glyph.
	ErrUnknownChar = errors.New("boardtext: unknown char")
)

// StartRobot is the ID given to the robot placed at '@'.
const StartRobot board.RobotID = 0

// Parse builds a Grid from text. The robot StartRobot stands on '@', or on
// the origin when the board has no '@'. With several '@' the first one in
// column order (lowest x, then lowest y) wins.
func Parse(text string) (*board.Grid, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	height, width := len(lines), len(lines[0])
	for i, l := range lines {
		if len(l) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, i, len(l), width)
		}
	}

	size := board.MapSize{Width: width, Height: height}
	g, err := board.NewGrid(size)
	if err != nil {
		return nil, err
	}
	start, placed := board.Origin, false
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			p := board.Point{X: x, Y: y}
			c := board.Cell{Point: p}
			switch ch := lines[y][x]; ch {
			case 'X':
				c.Obstacle = true
			case 'w':
				c.Wrapped = true
			case '.':
			case '@':
				if !placed {
					start, placed = p, true
				}
			case '*':
				c.TeleporterPlanted = true
				c.Wrapped = true
			default:
				b, ok := board.BoosterFromChar(ch)
				if !ok {
					return nil, fmt.Errorf("%w %q at %v", ErrUnknownChar, ch, p)
				}
				c.Booster = b
			}
			if err = g.Set(c); err != nil {
				return nil, err
			}
		}
	}
	if err = g.PlaceRobot(board.Robot{ID: StartRobot, Position: start}); err != nil {
		return nil, err
	}

	return g, nil
}

// MustParse is Parse for fixtures known to be valid. It panics on error.
func MustParse(text string) *board.Grid {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// splitLines strips whitespace and returns non-blank lines bottom-up.
func splitLines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	lines := make([]string, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		l := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, raw[i])
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Render draws s top row first with cells separated by single spaces.
// Cells in path are drawn as '|'. The robot StartRobot is drawn as '@'.
// Glyph priority: '*', 'w', '@', 'X', '|', 'o' (any booster), '.'.
func Render(s board.Snapshot, path []board.Point) string {
	size := s.Size()
	onPath := make(map[board.Point]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}
	start := board.Point{X: -1, Y: -1}
	if r, ok := s.Robot(StartRobot); ok {
		start = r.Position
	}

	var sb strings.Builder
	sb.Grow(size.Cells() * 2)
	for y := size.Height - 1; y >= 0; y-- {
		for x := 0; x < size.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			p := board.Point{X: x, Y: y}
			c, _ := s.At(p)
			_, inPath := onPath[p]
			switch {
			case c.TeleporterPlanted:
				sb.WriteByte('*')
			case c.Wrapped:
				sb.WriteByte('w')
			case p == start:
				sb.WriteByte('@')
			case c.Obstacle:
				sb.WriteByte('X')
			case inPath:
				sb.WriteByte('|')
			case c.HasBooster():
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
