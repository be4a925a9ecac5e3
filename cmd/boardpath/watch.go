package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/boardpath/analyzer"
	"github.com/katalvlaran/boardpath/board"
)

// runWatch plans once, then re-plans on every write to the board file
// until the command's context ends. The first board fixes the topology;
// a later board of another size fails its tick and the watch goes on.
func runWatch(cmd *cobra.Command, f *flags) error {
	grid, robot, opts, log, err := setup(cmd, f)
	if err != nil {
		return err
	}
	to, err := board.ParsePoint(f.to)
	if err != nil {
		return err
	}
	opts = append(opts, analyzer.WithMemo(f.memo))
	planner, err := analyzer.NewShortestPathAnalyzer(opts...).Analyze(grid)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors replace files, so watch the directory and filter by name.
	target := filepath.Clean(f.mapFile)
	if err = watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	ctx, out := cmd.Context(), cmd.OutOrStdout()
	tick := 0
	replan := func() {
		fmt.Fprintf(out, "tick %d\n", tick)
		if err := plan(ctx, out, planner, grid, robot, to); err != nil {
			log.Warn("plan failed",
				slog.Int("tick", tick),
				slog.String("robot", robot.ID.String()),
				slog.String("point", robot.Position.String()),
				slog.String("dst", to.String()),
				slog.String("error", err.Error()))
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	replan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			next, err := loadBoard(f)
			if err != nil {
				log.Debug("board unreadable", slog.String("error", err.Error()))
				continue
			}
			placed, err := placeRobot(next, f)
			if err != nil {
				log.Warn("robot placement failed", slog.String("error", err.Error()))
				continue
			}
			grid, robot = next, placed
			tick++
			replan()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}
