package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var isShouldShutdown atomic.Bool

// StartListeningForShutdownSignal flips the shutdown flag on SIGINT/SIGTERM.
// Background workers poll IsShouldShutdown between iterations.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-signals
		log.Info("Shutdown signal received", "signal", sig.String())
		isShouldShutdown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return isShouldShutdown.Load()
}
