package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/boardpath/analyzer"
	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/boardtext"
	"github.com/katalvlaran/boardpath/pathquery"
)

// flags shared by the subcommands.
type flags struct {
	mapFile    string
	configFile string
	logLevel   string
	from       string
	to         string
	robot      int
	drill      bool
	conn       int
	maxSteps   int
	memo       int
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "boardpath",
		Short:        "Plan robot routes on ASCII puzzle boards",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyConfig(cmd, f)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.mapFile, "map", "", "board file in ASCII form (required)")
	pf.StringVar(&f.configFile, "config", "", "YAML file with defaults for the flags below")
	pf.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.IntVar(&f.robot, "robot", int(boardtext.StartRobot), "robot to plan for")
	pf.BoolVar(&f.drill, "drill", false, "give the robot a drill; it may cross obstacles")
	pf.IntVar(&f.conn, "conn", 4, "neighbourhood: 4 or 8")
	pf.IntVar(&f.maxSteps, "max-steps", 0, "search budget in expanded cells, 0 for none")
	pf.IntVar(&f.memo, "memo", 16, "graphs kept between re-plans (watch)")

	route := &cobra.Command{
		Use:   "route",
		Short: "Print the shortest route between two cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoute(cmd, f)
		},
	}
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Re-plan the route every time the board file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, f)
		},
	}
	for _, c := range []*cobra.Command{route, watch} {
		c.Flags().StringVar(&f.from, "from", "", "start cell x,y (default: the robot's position)")
		c.Flags().StringVar(&f.to, "to", "", "destination cell x,y (required)")
		_ = c.MarkFlagRequired("to")
	}

	components := &cobra.Command{
		Use:   "components",
		Short: "Print the connected regions of the robot's graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runComponents(cmd, f)
		},
	}

	render := &cobra.Command{
		Use:   "render",
		Short: "Print the board in normalized form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := loadBoard(f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), boardtext.Render(grid, nil))
			return nil
		},
	}

	root.AddCommand(route, watch, components, render)
	return root
}

func newLogger(cmd *cobra.Command, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})), nil
}

func loadBoard(f *flags) (*board.Grid, error) {
	if f.mapFile == "" {
		return nil, fmt.Errorf("--map is required")
	}
	raw, err := os.ReadFile(f.mapFile)
	if err != nil {
		return nil, err
	}
	return boardtext.Parse(string(raw))
}

// placeRobot puts the selected robot on grid: at --from if given, else
// where the board has it, else on robot 0's cell.
func placeRobot(grid *board.Grid, f *flags) (board.Robot, error) {
	id := board.RobotID(f.robot)
	robot, ok := grid.Robot(id)
	if !ok {
		start, _ := grid.Robot(boardtext.StartRobot)
		robot = board.Robot{ID: id, Position: start.Position}
	}
	if f.drill {
		robot.Abilities |= board.AbilityDrill
	}
	if f.from != "" {
		p, err := board.ParsePoint(f.from)
		if err != nil {
			return board.Robot{}, err
		}
		robot.Position = p
	}
	return robot, grid.PlaceRobot(robot)
}

// analyzerOptions maps the flags onto analyzer options.
func analyzerOptions(f *flags, log *slog.Logger) ([]analyzer.Option, error) {
	var conn boardgraph.Connectivity
	switch f.conn {
	case 4:
		conn = boardgraph.Conn4
	case 8:
		conn = boardgraph.Conn8
	default:
		return nil, fmt.Errorf("invalid --conn %d: want 4 or 8", f.conn)
	}
	return []analyzer.Option{
		analyzer.WithLogger(log),
		analyzer.WithGraphOptions(
			boardgraph.WithConnectivity(conn),
			boardgraph.WithPassability(boardgraph.Drilling),
		),
		analyzer.WithQueryOptions(pathquery.WithMaxSteps(f.maxSteps)),
	}, nil
}

// setup loads the board, places the selected robot and returns the
// analyzer options matching the flags.
func setup(cmd *cobra.Command, f *flags) (*board.Grid, board.Robot, []analyzer.Option, *slog.Logger, error) {
	log, err := newLogger(cmd, f.logLevel)
	if err != nil {
		return nil, board.Robot{}, nil, nil, err
	}
	grid, err := loadBoard(f)
	if err != nil {
		return nil, board.Robot{}, nil, nil, err
	}
	opts, err := analyzerOptions(f, log)
	if err != nil {
		return nil, board.Robot{}, nil, nil, err
	}
	robot, err := placeRobot(grid, f)
	if err != nil {
		return nil, board.Robot{}, nil, nil, err
	}
	log.Debug("board loaded",
		slog.String("size", grid.Size().String()),
		slog.String("robot", robot.ID.String()),
		slog.String("point", robot.Position.String()))

	return grid, robot, opts, log, nil
}

func runRoute(cmd *cobra.Command, f *flags) error {
	grid, robot, opts, _, err := setup(cmd, f)
	if err != nil {
		return err
	}
	to, err := board.ParsePoint(f.to)
	if err != nil {
		return err
	}
	planner, err := analyzer.NewShortestPathAnalyzer(opts...).Analyze(grid)
	if err != nil {
		return err
	}
	return plan(cmd.Context(), cmd.OutOrStdout(), planner, grid, robot, to)
}

// plan answers one route query and prints it. Unreachable is not an error.
func plan(ctx context.Context, out io.Writer, planner analyzer.PlannerFunc, grid *board.Grid, robot board.Robot, to board.Point) error {
	svc, err := planner(ctx, robot.ID, grid)
	if err != nil {
		return err
	}
	res, err := svc.ShortestPath(robot.Position, to)
	if err != nil {
		return err
	}

	if !res.Reachable() {
		fmt.Fprintf(out, "no path from %v to %v (%s)\n", robot.Position, to, res.Status)
		return nil
	}
	steps := make([]string, len(res.Path))
	for i, p := range res.Path {
		steps[i] = p.String()
	}
	fmt.Fprintf(out, "cost: %d\n", res.Cost)
	fmt.Fprintf(out, "path: %s\n", strings.Join(steps, " "))
	fmt.Fprintln(out, boardtext.Render(grid, res.Path))
	return nil
}

func runComponents(cmd *cobra.Command, f *flags) error {
	grid, robot, opts, _, err := setup(cmd, f)
	if err != nil {
		return err
	}
	graphs, err := analyzer.NewGraphAnalyzer(opts...).Analyze(grid)
	if err != nil {
		return err
	}
	g, err := graphs(cmd.Context(), robot.ID, grid)
	if err != nil {
		return err
	}

	sizes := g.ComponentSizes()
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	fmt.Fprintf(cmd.OutOrStdout(), "nodes: %d edges: %d\n", g.NodeCount(), g.EdgeCount())
	fmt.Fprintf(cmd.OutOrStdout(), "regions: %d sizes: %v\n", len(sizes), sizes)
	return nil
}
