package util

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// LogErr logs a non-nil error on the logger and reports whether there was one.
func LogErr(logger logrus.FieldLogger, err error, msg string, args ...interface{}) bool {
	if err == nil {
		return false
	}

	logger.WithError(err).Errorf(msg, args...)
	return true
}

// BurstLogger warns about the first diagnostics of a burst and logs the rest at debug level.
// Suppressed counts the messages that were demoted.
type BurstLogger struct {
	logger  logrus.FieldLogger
	limiter *rate.Limiter

	Suppressed int
}

func NewBurstLogger(burst int, every time.Duration, logger logrus.FieldLogger) *BurstLogger {
	return &BurstLogger{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(every), burst),
	}
}

func (b *BurstLogger) Warn(err error, msg string, args ...interface{}) {
	entry := b.logger
	if err != nil {
		entry = entry.WithError(err)
	}

	if b.limiter.Allow() {
		entry.Warnf(msg, args...)
		return
	}

	b.Suppressed++
	entry.Debugf(msg, args...)
}

// Summary warns once about the demoted messages, if any.
func (b *BurstLogger) Summary(what string) {
	if b.Suppressed > 0 {
		b.logger.Warnf("%d more %s, enable debug logging to see them", b.Suppressed, what)
	}
}
