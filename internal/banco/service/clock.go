package service

import (
	"time"

	"github.com/aussiebroadwan/mibanco/pkg/metrics"
)

// nowUTC reads the injected clock, falling back to time.Now.
func nowUTC(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func recorderOr(m metrics.Recorder) metrics.Recorder {
	if m == nil {
		return metrics.Nop{}
	}
	return m
}
