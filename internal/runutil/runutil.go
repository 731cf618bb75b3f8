// Package runutil holds small run-time helpers shared by the tools: option
// sanity checks and throttled progress logging.
package runutil

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"unipept/internal/errors"
	"unipept/internal/logger"
)

// ValidatePeptideBounds checks the digest length window and returns the
// effective bounds plus warnings. A max below min is an error; a max of 0
// disables the upper bound.
func ValidatePeptideBounds(minLen, maxLen int) (int, int, []string, error) {
	var warns []string
	if minLen < 1 {
		warns = append(warns, fmt.Sprintf("--peptide-min %d raised to 1", minLen))
		minLen = 1
	}
	if maxLen < 0 {
		return 0, 0, nil, errors.Mark(errors.Newf("--peptide-max must be >= 0 (got %d)", maxLen), errors.ErrConfig)
	}
	if maxLen > 0 && maxLen < minLen {
		return 0, 0, nil, errors.Mark(errors.Newf("--peptide-max %d is below --peptide-min %d", maxLen, minLen), errors.ErrConfig)
	}
	return minLen, maxLen, warns, nil
}

// Progress logs a running count every N ticks.
type Progress struct {
	log   *zap.SugaredLogger
	what  string
	every rate.Sometimes
	start time.Time
	off   bool
}

// NewProgress logs at info level on the first tick and then every n ticks.
// n <= 0 disables logging.
func NewProgress(log *zap.SugaredLogger, what string, n int) *Progress {
	return &Progress{
		log:   logger.OrNop(log),
		what:  what,
		every: rate.Sometimes{Every: n},
		start: time.Now(),
		off:   n <= 0,
	}
}

// Tick records one more item; count is the running total.
func (p *Progress) Tick(count int) {
	if p.off {
		return
	}
	p.every.Do(func() {
		p.log.Infow(p.what, logger.FieldCount, count, logger.FieldDuration, time.Since(p.start).Round(time.Millisecond))
	})
}

// Done logs the final count.
func (p *Progress) Done(count int) {
	p.log.Infow(p.what+" done", logger.FieldCount, count, logger.FieldDuration, time.Since(p.start).Round(time.Millisecond))
}
