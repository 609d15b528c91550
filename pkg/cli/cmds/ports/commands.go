// Package ports provides the shell command listing serial ports.
package ports

import (
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/vxclone/pkg/cli/sh"
	"github.com/robotalks/vxclone/pkg/link"
)

var (
	usbPorts = link.USBPorts
	scanDir  = func() ([]string, error) { return link.ScanDir(link.DefaultDevDir, link.DefaultDevPrefix) }
)

// List prints the candidate serial ports, the configured one marked
// with *.
func List(s *sh.Shell) error {
	current, _ := s.Config.PortPath()
	mark := func(name string) string {
		if name == current {
			return "*"
		}
		return " "
	}

	ports, err := usbPorts()
	if err != nil {
		glog.Warningf("enumerate USB ports: %v", err)
	}
	if len(ports) > 0 {
		for _, p := range ports {
			fmt.Fprintf(s.Out, "%s %s\t%s:%s\t%s\t%s\n", mark(p.Name), p.Name, p.VID, p.PID, p.SerialNumber, p.Product)
		}
		return nil
	}

	names, err := scanDir()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(s.Out, "No serial ports found")
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(s.Out, "%s %s\n", mark(name), name)
	}
	return nil
}

// PortsCmd lists serial ports.
var PortsCmd = ishell.Cmd{
	Name:    "ports",
	Aliases: []string{"list", "l"},
	Help:    "list serial ports",
	Func: sh.Command(func(s *sh.Shell, c *ishell.Context) error {
		return List(s)
	}),
}

func init() {
	sh.AddCmds(&PortsCmd)
}
