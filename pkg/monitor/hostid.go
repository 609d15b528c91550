package monitor

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const unknownHost = "unknown"

var machineID = machineid.ID

// HostID retrieves the unique ID identifying the machine, used to keep
// topics of different hosts apart.
func HostID() string {
	id, err := machineID()
	if err != nil || id == "" {
		glog.Warningf("machine id unavailable: %v", err)
		return unknownHost
	}
	return id
}

// ClientID derives an MQTT client ID from the host ID. MQTT 3.1 brokers
// may reject IDs longer than 23 characters.
func ClientID(hostID string) string {
	id := "vxclone-" + hostID
	if len(id) > 23 {
		id = id[:23]
	}
	return id
}
