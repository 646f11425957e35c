package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

var (
	signalCtx context.Context
	once      sync.Once
)

// Context returns a Context that is cancelled on the first SIGTERM or
// SIGINT, so that running samplers can stop early. A second signal
// terminates the program with exit code 1. Only the logger of the first
// call is used.
func Context(logger logrus.FieldLogger) context.Context {
	once.Do(func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, shutdownSignals...)
		var cancel context.CancelFunc
		signalCtx, cancel = context.WithCancel(context.Background())
		go func() {
			sig := <-c
			logger.WithField("signal", sig).Info("interrupted, stopping samplers")
			cancel()

			sig = <-c
			logger.WithField("signal", sig).Warn("interrupted again, exiting")
			os.Exit(1) // second signal. Exit directly.
		}()
	})

	return signalCtx
}
