package framework

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

// exit is replaced in tests.
var exit = os.Exit

// HandleSignals derives a context canceled on the first Ctrl-C or SIGTERM.
// A second signal forces the process to exit.
// The returned func stops signal handling.
func HandleSignals(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	stopCh := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-stopCh:
			return
		}
		glog.Info("stop requested")
		cancel()
		select {
		case <-sigCh:
		case <-stopCh:
			return
		}
		glog.Error("stop requested again, force exit")
		glog.Flush()
		exit(1)
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		close(stopCh)
		cancel()
	}
}

// RunWithContextCancel runs a func which doesn't accept a context.
// onCancel is called only when the context is canceled, and is expected to
// unblock fn.
func RunWithContextCancel(ctx context.Context, onCancel func(), fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// RunWithContextCloser is a convenient wrapper for RunWithContextCancel and
// ensures closer.Close is either called on cancel or exit of fn.
// A Close error is aggregated with the error from fn.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	var closed bool
	var closeErr error
	err := RunWithContextCancel(ctx, func() {
		closeErr = closer.Close()
		closed = true
	}, fn)
	if !closed {
		closeErr = closer.Close()
	}
	if closeErr == nil {
		return err
	}
	var errs AggregatedError
	return errs.Add(err, closeErr).Aggregate()
}
