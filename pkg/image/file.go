package image

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"

	"golang.org/x/term"
)

// Stdio is the path which selects standard input or output.
const Stdio = "-"

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	// isTerminal is replaced in tests.
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// Load reads an image from path, or from standard input if path is empty
// or Stdio. The length is not checked.
func Load(path string) (Image, error) {
	if path == "" || path == Stdio {
		return ioutil.ReadAll(stdin)
	}
	return ioutil.ReadFile(path)
}

// Save writes img to path. With an empty path or Stdio the image goes to
// standard output, hex encoded if that is a terminal.
func Save(path string, img Image) error {
	if path != "" && path != Stdio {
		return ioutil.WriteFile(path, img, 0644)
	}
	if isTerminal() {
		_, err := io.WriteString(stdout, hex.EncodeToString(img)+"\n")
		return err
	}
	_, err := stdout.Write(img)
	return err
}

// Snippet formats the first max bytes of data in hex for log messages.
func Snippet(data []byte, max int) string {
	if len(data) <= max {
		return hex.EncodeToString(data)
	}
	return hex.EncodeToString(data[:max]) + "..."
}
