// Package radio provides the shell commands talking to the radio.
package radio

import (
	"context"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/vxclone/pkg/cli/sh"
	"github.com/robotalks/vxclone/pkg/clone"
	"github.com/robotalks/vxclone/pkg/image"
)

// Read receives an image from the radio and saves it to path.
func Read(s *sh.Shell, path string) error {
	return s.Transfer(func(ctx context.Context, session *clone.Session) error {
		img, err := session.Receive(ctx)
		if err != nil {
			return err
		}
		return image.Save(path, img)
	})
}

// Write loads the image in path, corrects its checkbytes and sends it to
// the radio. With freeband the image is patched for out of band use first.
func Write(s *sh.Shell, path string, freeband bool) error {
	img, err := image.Load(path)
	if err != nil {
		return err
	}
	if err := image.CheckLength(img); err != nil {
		return err
	}
	if freeband {
		img = image.Freeband(img, s.Config.Modded)
	}
	img, _, err = image.Corrected(img)
	if err != nil {
		return err
	}
	return s.Transfer(func(ctx context.Context, session *clone.Session) error {
		return session.Send(ctx, img)
	})
}

var (
	// ReadCmd reads the radio.
	ReadCmd = ishell.Cmd{
		Name: "read",
		Help: "[FILE] read image from radio, to stdout if FILE is omitted",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return Read(s, sh.PathArg(c))
		}),
	}

	// WriteCmd writes the radio.
	WriteCmd = ishell.Cmd{
		Name: "write",
		Help: "[FILE] write image to radio, from stdin if FILE is omitted",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return Write(s, sh.PathArg(c), false)
		}),
	}

	// ModWriteCmd writes the radio with the freeband patch.
	ModWriteCmd = ishell.Cmd{
		Name: "modwrite",
		Help: "[FILE] write image to radio with freeband mod enabled",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return Write(s, sh.PathArg(c), true)
		}),
	}
)

func init() {
	sh.AddCmds(&ReadCmd, &WriteCmd, &ModWriteCmd)
}
