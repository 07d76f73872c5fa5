package device

import (
	"log/slog"
)

// Logger returns a structured logger for the lane. Records are rendered as
// text and sent to the host console, one print per record, tagged with the
// lane's work-group and thread coordinates. Records that do not fit a single
// print are dropped.
func (l *Lane) Logger() *slog.Logger {
	l.logOnce.Do(func() {
		h := slog.NewTextHandler(l.rt.console, &slog.HandlerOptions{Level: slog.LevelDebug})
		l.logger = slog.New(h).With(
			slog.String("workgroup", l.WorkgroupID().String()),
			slog.String("thread", l.WorkitemID().String()),
		)
	})
	return l.logger
}
