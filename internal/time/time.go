package time

import (
	"time"

	"github.com/rs/zerolog/log"
)

func FromMilli(milli int64) time.Time {
	return time.UnixMilli(milli)
}

func ToMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// Execute executes the given function at the specified interval providing also a shutdown hook.
// The first execution happens immediately.
func Execute(stop <-chan struct{}, name string, interval time.Duration, exec func() error, shutdown func()) {
	ticker := time.NewTicker(interval)
	go func() {
		defer shutdown()
		err := exec()
		if err != nil {
			log.Warn().Err(err).Str("task", name).Msg("execution failed")
		}
		for {
			select {
			case <-ticker.C:
				err := exec()
				if err != nil {
					log.Warn().Err(err).Str("task", name).Msg("execution failed")
				}
			case <-stop:
				log.Info().Str("task", name).Float64("interval", interval.Seconds()).Msg("execution stopped")
				ticker.Stop()
				return
			}
		}
	}()
}
