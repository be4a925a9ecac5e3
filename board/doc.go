// Package board models the puzzle board that robots navigate: integer
// points, the map size, per-cell state, robots and the read-only Snapshot
// view that graph construction consumes.
//
// What:
//
//   - Point and MapSize address cells; MapSize.Index maps a point to a
//     row‑major index (y*Width + x) used by every dense per-cell table.
//   - Cell carries the mutable facts of one position: Obstacle, Wrapped,
//     TeleporterPlanted and an optional Booster.
//   - Robot couples a RobotID with its position and Ability bits.
//   - Snapshot is the read-only accessor a graph builder needs. Grid is the
//     in-memory implementation; Clone gives callers copy-on-write snapshots.
//   - Fingerprint hashes a Snapshot's full content so derived graphs can be
//     memoized per (robot, state) without ever observing a stale result.
//
// Coordinates:
//
//	y grows upwards; (0,0) is the bottom-left cell.
//
//	  (0,2) (1,2) (2,2)
//	  (0,1) (1,1) (2,1)
//	  (0,0) (1,0) (2,0)
//
// Errors:
//
//   - ErrOutOfBounds: a point lies outside the map.
//   - ErrShape: declared size and cell data disagree.
//   - ErrDuplicateRobot: two robots share one RobotID.
//   - ErrBadSize: width or height is not positive.
package board
