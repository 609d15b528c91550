// Package file provides the shell commands working on image files.
package file

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/vxclone/pkg/charset"
	"github.com/robotalks/vxclone/pkg/cli/sh"
	"github.com/robotalks/vxclone/pkg/image"
)

// Checksum validates the image in path, printing OK or FAILED.
func Checksum(s *sh.Shell, path string) error {
	valid, err := image.ValidateFile(path)
	if err != nil {
		return err
	}
	if !valid {
		fmt.Fprintln(s.Out, "FAILED")
		return sh.ErrFailed
	}
	fmt.Fprintln(s.Out, "OK")
	return nil
}

// RawDump prints the image translated to the radio character set.
func RawDump(s *sh.Shell, path string) error {
	img, err := image.Load(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.Out, charset.RawDump(img))
	return err
}

// Dump prints the translated image in rows with offsets.
func Dump(s *sh.Shell, path string) error {
	img, err := image.Load(path)
	if err != nil {
		return err
	}
	return charset.Dump(s.Out, img)
}

var (
	// ChecksumCmd validates an image file.
	ChecksumCmd = ishell.Cmd{
		Name: "checksum",
		Help: "[FILE] validate checkbytes",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return Checksum(s, sh.PathArg(c))
		}),
	}

	// RawDumpCmd prints an image as text.
	RawDumpCmd = ishell.Cmd{
		Name: "rawdump",
		Help: "[FILE] print image in the radio character set",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return RawDump(s, sh.PathArg(c))
		}),
	}

	// DumpCmd prints an image as text rows.
	DumpCmd = ishell.Cmd{
		Name: "dump",
		Help: "[FILE] print image in rows of 32 characters",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return Dump(s, sh.PathArg(c))
		}),
	}

	// CharDumpCmd prints the character sets.
	CharDumpCmd = ishell.Cmd{
		Name: "chardump",
		Help: "print the radio character sets",
		Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
			return charset.CharDump(s.Out)
		}),
	}
)

func init() {
	sh.AddCmds(&ChecksumCmd, &RawDumpCmd, &DumpCmd, &CharDumpCmd)
}
