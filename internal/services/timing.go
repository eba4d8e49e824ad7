package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Calls slower than this are logged at warn level instead of debug
const slowCallThreshold = 5 * time.Second

// TrackTime logs how long funcName took and returns the elapsed time.
// Use as defer TrackTime("name", time.Now()).
func TrackTime(funcName string, start time.Time) time.Duration {
	elapsed := time.Since(start)
	entry := log.WithFields(log.Fields{"func": funcName, "elapsed_ms": elapsed.Milliseconds()})
	if elapsed >= slowCallThreshold {
		entry.Warnf("%s is slow", funcName)
	} else {
		entry.Debugf("%s took %d ms", funcName, elapsed.Milliseconds())
	}
	return elapsed
}
