package clone

import (
	"context"
	"flag"
	"testing"

	"github.com/golang/glog"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/vxclone/pkg/image"
)

func TestSendBlock(t *testing.T) {
	block := []byte{0x01, 0x02, 0xff, 0x04, 0x05}
	// the radio stores the final block from this image offset
	finalBase, _ := image.SegmentBounds(2)
	testCases := []struct {
		name   string
		final  bool
		echo   func(offset int, b byte) []byte
		expect BlockResult
		writes int
	}{
		{
			name:   "all echoed",
			expect: BlockResult{Status: BlockOK, Offset: 5},
			writes: 5,
		},
		{
			name:   "adapter quirk",
			echo:   echoAt(2, []byte{0xff, 0xff, ACK}),
			expect: BlockResult{Status: BlockRecovered, Offset: 2, Sent: 0xff, Echo: []byte{0xff, 0xff, ACK}},
			writes: 3,
		},
		{
			name:   "quirk pattern on other byte",
			echo:   echoAt(1, []byte{0xff, 0xff, ACK}),
			expect: BlockResult{Status: BlockOK, Offset: 5},
			writes: 5,
		},
		{
			name:   "mismatch in non-final block",
			echo:   echoAt(3, []byte{0x40}),
			expect: BlockResult{Status: BlockOK, Offset: 5},
			writes: 5,
		},
		{
			name:   "mismatch in final block",
			final:  true,
			echo:   echoAt(finalBase+3, []byte{0x40}),
			expect: BlockResult{Status: BlockAborted, Offset: 3, Sent: 0x04, Echo: []byte{0x40}},
			writes: 4,
		},
		{
			name:   "quirk in final block",
			final:  true,
			echo:   echoAt(finalBase+2, []byte{0xff, 0xff, ACK}),
			expect: BlockResult{Status: BlockAborted, Offset: 2, Sent: 0xff, Echo: []byte{0xff, 0xff, ACK}},
			writes: 3,
		},
		{
			name:   "missing echo in final block",
			final:  true,
			echo:   echoAt(finalBase+4, []byte{}),
			expect: BlockResult{Status: BlockAborted, Offset: 4, Sent: 0x05},
			writes: 5,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rx := newReceivingRadio()
			rx.echo = tc.echo
			if tc.final {
				rx.block = 2
			}
			tr := newTestEngine().newTransfer(rx, ToRadio)
			res, err := tr.sendBlock(context.Background(), block, 0, tc.final)
			require.NoError(t, err)
			require.Equal(t, tc.expect, res)
			require.Equal(t, block[:tc.writes], rx.writes)
			if tc.final {
				require.Equal(t, 0, rx.breaks)
			} else {
				require.Equal(t, tc.writes, rx.breaks)
			}
		})
	}
}

func TestSendBlockTraced(t *testing.T) {
	require.NoError(t, flag.Set("v", "2"))
	defer flag.Set("v", "0")
	require.True(t, bool(glog.V(2)))

	block := []byte{0x01, 0xff, 0x03}
	rx := newReceivingRadio()
	rx.echo = echoAt(1, []byte{0xff, 0xff, ACK})
	res, err := newTestEngine().newTransfer(rx, ToRadio).sendBlock(context.Background(), block, 0, false)
	require.NoError(t, err)
	require.Equal(t, BlockResult{Status: BlockRecovered, Offset: 1, Sent: 0xff, Echo: []byte{0xff, 0xff, ACK}}, res)
}

func echoAt(offset int, echo []byte) func(int, byte) []byte {
	return func(off int, b byte) []byte {
		if off == offset {
			return echo
		}
		return nil
	}
}

func TestReadEcho(t *testing.T) {
	rx := newReceivingRadio()
	tr := newTestEngine().newTransfer(rx, ToRadio)

	rx.in = []byte{1, 2, 3}
	echo, err := tr.readEcho(false)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, echo)

	rx.in = []byte{1, 2, 3}
	echo, err = tr.readEcho(true)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, echo)

	rx.in = nil
	echo, err = tr.readEcho(false)
	require.NoError(t, err)
	require.Empty(t, echo)
	require.Equal(t, []int{3, 1, 1}, rx.reads)
}

func TestIsAdapterQuirk(t *testing.T) {
	require.True(t, isAdapterQuirk(0xff, []byte{0xff, 0xff, 0x06}))
	require.False(t, isAdapterQuirk(0xfe, []byte{0xff, 0xff, 0x06}))
	require.False(t, isAdapterQuirk(0xff, []byte{0xff, 0x06}))
	require.False(t, isAdapterQuirk(0xff, []byte{0xff, 0xff, 0x06, 0x06}))
}
