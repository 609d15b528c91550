package sh

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/vxclone/pkg/config"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Config *config.Config
	Ctx    context.Context

	// Out receives command output. Status and prompts go to Err so
	// images written to standard output stay clean.
	Out io.Writer
	Err io.Writer

	failed bool
}

// ErrFailed is returned by Run when a command failed. The command has
// already reported why.
var ErrFailed = errors.New("command failed")

const (
	shellKey = "$shell"
	prompt   = "vxclone > "
)

var (
	// flags

	evalOnly bool

	commands []*ishell.Cmd

	exit = os.Exit
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(ctx context.Context, conf *config.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,

		Shell:  ishell.New(),
		Config: conf,
		Ctx:    ctx,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Command wraps a command func returning an error. The error is
// reported and fails a non-interactive run.
func Command(fn func(s *Shell, c *ishell.Context) error) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		if err := fn(s, c); err != nil {
			s.failed = true
			if !errors.Is(err, ErrFailed) {
				c.Err(err)
			}
		}
	}
}

// PathArg returns the optional FILE argument, empty for standard I/O.
func PathArg(c *ishell.Context) string {
	if len(c.Args) > 0 {
		return c.Args[0]
	}
	return ""
}

// Printf writes status to Err.
func (s *Shell) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Err, format, args...)
}

// Run runs the shell. With args, it runs them as a single command.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			return err
		}
		if s.failed {
			return ErrFailed
		}
		return nil
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return errors.New("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	err := New(context.Background(), config.MustLoad()).Run(flag.Args()...)
	glog.Flush()
	switch {
	case err == nil:
	case errors.Is(err, ErrFailed):
		exit(1)
	default:
		log.Fatalln(err)
	}
}
