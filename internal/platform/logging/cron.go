package logging

import "github.com/robfig/cron/v3"

type cronLogger struct {
	logger *Logger
}

// CronLogger adapts l to the logger interface of robfig/cron.
// Scheduler chatter is logged at debug level.
func CronLogger(l *Logger) cron.Logger {
	if l == nil {
		l = Default()
	}
	return cronLogger{logger: l.With("component", "cron")}
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.logger.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	args := make([]any, 0, len(keysAndValues)+2)
	args = append(args, keysAndValues...)
	args = append(args, "error", err)
	c.logger.Error(msg, args...)
}
