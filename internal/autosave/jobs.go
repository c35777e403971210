package autosave

import (
	"context"
	"log/slog"

	"github.com/flemzord/easel/internal/session"
)

// SnapshotStore is the subset of the sqlite store needed by the snapshot
// job. Defined here so the job is testable without a real database.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, document []byte) error
}

// SessionSource iterates live sessions.
type SessionSource interface {
	Range(fn func(*session.Session))
}

// SnapshotJob saves every open session's document on each tick.
type SnapshotJob struct {
	Sessions     SessionSource
	Store        SnapshotStore
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "@every 1m"
}

// Compile-time interface check.
var _ Job = (*SnapshotJob)(nil)

// Name implements Job.
func (j *SnapshotJob) Name() string { return "session_snapshot" }

// Schedule implements Job.
func (j *SnapshotJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "@every 1m"
}

// Run snapshots every live session. A failure on one session does not stop
// the others; the last error is reported after the sweep.
func (j *SnapshotJob) Run(ctx context.Context) error {
	var (
		saved   int
		lastErr error
	)
	j.Sessions.Range(func(s *session.Session) {
		if ctx.Err() != nil {
			return
		}
		data, err := s.Snapshot()
		if err != nil {
			j.Logger.Error("autosave: snapshot failed", "session", s.ID, "error", err)
			lastErr = err
			return
		}
		if err := j.Store.Save(ctx, s.ID, data); err != nil {
			j.Logger.Error("autosave: save failed", "session", s.ID, "error", err)
			lastErr = err
			return
		}
		saved++
	})

	if saved > 0 {
		j.Logger.Debug("autosave: sessions saved", "count", saved)
	}
	return lastErr
}
