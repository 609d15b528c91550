package clone

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vxclone/pkg/image"
	"github.com/robotalks/vxclone/pkg/link"
)

func openerOf(l link.Link, opened *int) link.Opener {
	return func() (link.Link, error) {
		*opened++
		return l, nil
	}
}

func TestSessionClosesLink(t *testing.T) {
	var opened int
	img := validImage(t, 21)

	rx := newReceivingRadio()
	require.NoError(t, NewSession(openerOf(rx, &opened), newTestEngine()).Send(context.Background(), img))
	require.True(t, rx.closed)

	tx := newSendingRadio(rx.memory)
	got, err := NewSession(openerOf(tx, &opened), newTestEngine()).Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, img, got)
	require.True(t, tx.closed)
	require.Equal(t, 2, opened)
}

func TestSessionClosesLinkOnError(t *testing.T) {
	var opened int
	img := validImage(t, 22)
	rx := newReceivingRadio()
	// corrupt the echo of the first byte of the final block
	rx.echo = func(offset int, b byte) []byte {
		if offset == 18 {
			return []byte{b + 1}
		}
		return nil
	}
	err := NewSession(openerOf(rx, &opened), newTestEngine()).Send(context.Background(), img)
	var echoErr *EchoMismatchError
	require.True(t, errors.As(err, &echoErr), "%v", err)
	require.True(t, rx.closed)
}

func TestSessionCancelClosesLink(t *testing.T) {
	var opened int
	l := newBlockingLink()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := NewSession(openerOf(l, &opened), newTestEngine()).Receive(ctx)
	require.Equal(t, context.Canceled, err)
	require.True(t, l.isClosed())
}

func TestSessionSendShortImage(t *testing.T) {
	var opened int
	err := NewSession(openerOf(newReceivingRadio(), &opened), nil).Send(context.Background(), make(image.Image, image.Size-1))
	var lenErr *image.LengthMismatchError
	require.True(t, errors.As(err, &lenErr), "%v", err)
	require.Equal(t, 0, opened)
}

func TestSessionOpenError(t *testing.T) {
	openErr := &link.UnavailableError{Path: "/dev/ttyUSB0", Err: errors.New("busy")}
	s := NewSession(func() (link.Link, error) { return nil, openErr }, nil)
	_, err := s.Receive(context.Background())
	require.True(t, link.IsUnavailable(err))

	_, err = (&Session{}).Receive(context.Background())
	require.Error(t, err)
}
