package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func withMachineID(t *testing.T, fn func() (string, error)) {
	saved := machineID
	machineID = fn
	t.Cleanup(func() { machineID = saved })
}

func TestHostID(t *testing.T) {
	withMachineID(t, func() (string, error) { return "0123456789abcdef", nil })
	require.Equal(t, "0123456789abcdef", HostID())

	withMachineID(t, func() (string, error) { return "", errors.New("no machine id") })
	require.Equal(t, unknownHost, HostID())
}

func TestClientID(t *testing.T) {
	require.Equal(t, "vxclone-abc", ClientID("abc"))
	id := ClientID("0123456789abcdef0123456789abcdef")
	require.Len(t, id, 23)
	require.Equal(t, "vxclone-0123456789abcde", id)
}
