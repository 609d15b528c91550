package framework

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testCloser struct {
	closes  int32
	err     error
	closeCh chan struct{}
}

func newTestCloser() *testCloser {
	return &testCloser{closeCh: make(chan struct{})}
}

func (c *testCloser) Close() error {
	if atomic.AddInt32(&c.closes, 1) == 1 {
		close(c.closeCh)
	}
	return c.err
}

func TestRunWithContextCloserClosesOnExit(t *testing.T) {
	c := newTestCloser()
	err := RunWithContextCloser(context.Background(), c, func() error {
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&c.closes))

	c = newTestCloser()
	fnErr := errors.New("transfer failed")
	err = RunWithContextCloser(context.Background(), c, func() error {
		return fnErr
	})
	require.Equal(t, fnErr, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&c.closes))
}

func TestRunWithContextCloserClosesOnCancel(t *testing.T) {
	c := newTestCloser()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := RunWithContextCloser(ctx, c, func() error {
		<-c.closeCh
		return errors.New("read on closed port")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&c.closes))
}

func TestRunWithContextCloserAggregatesCloseError(t *testing.T) {
	c := newTestCloser()
	c.err = errors.New("close failed")
	fnErr := errors.New("transfer failed")
	err := RunWithContextCloser(context.Background(), c, func() error {
		return fnErr
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, fnErr))
	require.Contains(t, err.Error(), "close failed")

	err = RunWithContextCloser(context.Background(), newTestCloser(), func() error { return nil })
	require.NoError(t, err)
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())
	e1, e2 := errors.New("e1"), errors.New("e2")
	err := errs.Add(e1, nil, e2).Aggregate()
	require.Equal(t, "Multiple errors:\ne1\ne2", err.Error())
	require.True(t, errors.Is(err, e1))
}

func TestHandleSignalsStop(t *testing.T) {
	ctx, stop := HandleSignals(context.Background())
	require.NoError(t, ctx.Err())
	stop()
	<-ctx.Done()
	require.Equal(t, context.Canceled, ctx.Err())
}
