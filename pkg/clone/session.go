package clone

import (
	"context"
	"errors"

	"github.com/robotalks/vxclone/pkg/framework"
	"github.com/robotalks/vxclone/pkg/image"
	"github.com/robotalks/vxclone/pkg/link"
)

// Session owns the link for a single transfer.
type Session struct {
	Open   link.Opener
	Engine *Engine
}

// NewSession creates a Session.
func NewSession(open link.Opener, engine *Engine) *Session {
	return &Session{Open: open, Engine: engine}
}

func (s *Session) engine() *Engine {
	if s.Engine == nil {
		s.Engine = New()
	}
	return s.Engine
}

func (s *Session) run(ctx context.Context, fn func(link.Link) error) error {
	if s.Open == nil {
		return errors.New("no serial device configured")
	}
	l, err := s.Open()
	if err != nil {
		return err
	}
	return framework.RunWithContextCloser(ctx, l, func() error {
		return fn(l)
	})
}

// Receive opens the link and reads an image from the radio.
func (s *Session) Receive(ctx context.Context) (img image.Image, err error) {
	err = s.run(ctx, func(l link.Link) (err error) {
		img, err = s.engine().Receive(ctx, l)
		return
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Send opens the link and writes img to the radio. The length is checked
// before the link is opened.
func (s *Session) Send(ctx context.Context, img image.Image) error {
	if err := image.CheckLength(img); err != nil {
		return err
	}
	return s.run(ctx, func(l link.Link) error {
		return s.engine().Send(ctx, l, img)
	})
}
