package sh

import (
	"context"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/vxclone/pkg/clone"
	"github.com/robotalks/vxclone/pkg/framework"
)

// instructions tell the operator how to put the radio in clone mode.
var instructions = map[clone.Direction][]string{
	clone.FromRadio: {
		"1) While holding MON-F, power on VX-7R",
		"2) Hit <Enter> on computer keyboard",
		"3) Within 30 seconds, hit BAND key on VX-7R",
	},
	clone.ToRadio: {
		"1) While holding MON-F, power on VX-7R",
		"2) Hit V/M key on VX-7R",
		"3) Within 30 seconds, hit <Enter> key on computer keyboard",
	},
}

// Prompt shows the instructions for dir and waits for <Enter>.
func (s *Shell) Prompt(dir clone.Direction) error {
	s.Printf("Instructions:\n    %s ", strings.Join(instructions[dir], "\n    "))
	if s.Shell != nil {
		s.Shell.ReadLine()
	}
	return nil
}

// EngineOptions returns the engine options for a transfer: timing from
// the config, the operator prompt and the given callbacks.
func (s *Shell) EngineOptions(progress []clone.ProgressCallback, states []clone.StateCallback) []clone.Option {
	opts := s.Config.EngineOptions()
	if s.Config.Prompt {
		opts = append(opts, clone.WithPrompter(s.Prompt))
	}
	opts = append(opts,
		clone.WithProgressCallback(func(p clone.Progress) {
			for _, cb := range progress {
				cb(p)
			}
		}),
		clone.WithStateCallback(func(dir clone.Direction, state clone.State) {
			for _, cb := range states {
				cb(dir, state)
			}
		}),
	)
	return opts
}

// Transfer runs fn with a session on the configured port. Progress is
// shown on Err and published when a monitor is configured. Ctrl-C cancels
// the transfer.
func (s *Shell) Transfer(fn func(context.Context, *clone.Session) error) error {
	open, err := s.Config.Opener()
	if err != nil {
		return err
	}

	bar := newProgressBar(s.Err)
	progress := []clone.ProgressCallback{bar.Update}
	var states []clone.StateCallback
	mon, err := s.Config.NewMonitor()
	if err != nil {
		glog.Warningf("monitor disabled: %v", err)
	} else if mon != nil {
		defer mon.Close()
		progress = append(progress, mon.Progress)
		states = append(states, mon.State)
	}

	parent := s.Ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := framework.HandleSignals(parent)
	defer stop()

	session := clone.NewSession(open, clone.New(s.EngineOptions(progress, states)...))
	err = fn(ctx, session)
	bar.Finish()
	return err
}
