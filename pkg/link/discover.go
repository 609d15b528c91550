package link

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// Default location scanned for USB serial adapters.
const (
	DefaultDevDir    = "/dev"
	DefaultDevPrefix = "ttyUSB"
)

// ScanDir lists device nodes in dir whose names start with prefix, sorted.
func ScanDir(dir, prefix string) ([]string, error) {
	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ports []string
	for _, info := range infos {
		if strings.HasPrefix(info.Name(), prefix) {
			ports = append(ports, filepath.Join(dir, info.Name()))
		}
	}
	sort.Strings(ports)
	return ports, nil
}

// DefaultPort returns the first USB serial adapter found in DefaultDevDir,
// or an empty string.
func DefaultPort() string {
	ports, err := ScanDir(DefaultDevDir, DefaultDevPrefix)
	if err != nil || len(ports) == 0 {
		return ""
	}
	return ports[0]
}

// PortInfo describes a serial port found by USBPorts.
type PortInfo struct {
	Name         string
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// USBPorts lists the USB serial ports known to the system.
func USBPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	var ports []PortInfo
	for _, d := range details {
		if !d.IsUSB {
			continue
		}
		ports = append(ports, PortInfo{
			Name:         d.Name,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })
	return ports, nil
}
