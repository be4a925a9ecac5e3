package analyzer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/pathquery"
)

// PlanAll runs planner for every robot concurrently over the same
// snapshot, which must not be mutated until PlanAll returns. Services are
// returned in robot order. The first failure stops pipelines that have
// not started yet and is returned with the robot that caused it.
func PlanAll(ctx context.Context, planner PlannerFunc, state board.Snapshot, robots []board.RobotID) ([]*pathquery.Service, error) {
	out := make([]*pathquery.Service, len(robots))
	g, gCtx := errgroup.WithContext(ctx)
	for i, id := range robots {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// Services keep the caller's context; gCtx ends with Wait.
			svc, err := planner(ctx, id, state)
			if err != nil {
				return fmt.Errorf("%v: %w", id, err)
			}
			out[i] = svc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
