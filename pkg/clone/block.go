package clone

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/golang/glog"

	"github.com/robotalks/vxclone/pkg/image"
)

// BlockStatus is the outcome of sending one block.
type BlockStatus int

// Block outcomes.
const (
	// BlockOK means every byte was sent.
	BlockOK BlockStatus = iota
	// BlockRecovered means the adapter quirk ended the block early.
	BlockRecovered
	// BlockAborted means the final block failed its echo check.
	BlockAborted
)

// String implements fmt.Stringer.
func (s BlockStatus) String() string {
	switch s {
	case BlockOK:
		return "ok"
	case BlockRecovered:
		return "recovered"
	case BlockAborted:
		return "aborted"
	}
	return "unknown"
}

// BlockResult is returned by sendBlock.
type BlockResult struct {
	Status BlockStatus
	// Offset is the block offset where sending stopped, or the block
	// length when the block completed.
	Offset int
	Sent   byte
	Echo   []byte
}

// adapterQuirkEcho is what some USB adapters read back for a 0xFF byte:
// the byte doubled and merged with the radio's ACK.
var adapterQuirkEcho = []byte{0xff, 0xff, ACK}

func isAdapterQuirk(sent byte, echo []byte) bool {
	return sent == 0xff && bytes.Equal(echo, adapterQuirkEcho)
}

// sendBlock writes block one byte at a time, checking the echo of each.
// base is the image offset of the block, used for logging.
func (t *transfer) sendBlock(ctx context.Context, block []byte, base int, final bool) (BlockResult, error) {
	glog.V(1).Infof("attempting to write %d bytes", len(block))
	readback := make([]byte, 0, len(block))
	for i, b := range block {
		if err := ctx.Err(); err != nil {
			return BlockResult{}, err
		}
		if err := t.link.Write([]byte{b}); err != nil {
			return BlockResult{}, err
		}
		if !final {
			if err := t.link.SendBreak(t.config.BreakDuration); err != nil {
				return BlockResult{}, err
			}
		}
		echo, err := t.readEcho(i == len(block)-1)
		if err != nil {
			return BlockResult{}, err
		}
		readback = append(readback, echo...)
		t.advance(1)
		if glog.V(2) {
			glog.Infof("0x%04x: sent %02x, echoed %s", base+i, b, hex.EncodeToString(echo))
		}
		if len(echo) == 1 && echo[0] == b {
			continue
		}
		if final {
			glog.Errorf("quitting at block offset %d (image offset 0x%x)", i, base+i)
			return BlockResult{Status: BlockAborted, Offset: i, Sent: b, Echo: echo}, nil
		}
		if isAdapterQuirk(b, echo) {
			glog.Infof("last character doubled at image offset 0x%x, skipping to next block", base+i)
			return BlockResult{Status: BlockRecovered, Offset: i, Sent: b, Echo: echo}, nil
		}
		glog.Warningf("echo mismatch at block offset %d (image offset 0x%x): sent %02x, read back %s",
			i, base+i, b, hex.EncodeToString(echo))
	}
	glog.V(1).Infof("data written: %s", image.Snippet(readback, 32))
	return BlockResult{Status: BlockOK, Offset: len(block)}, nil
}

// readEcho reads the echo of the byte just written. The last byte of a
// block waits for exactly one byte; the others drain whatever the radio
// has echoed so far, at least one byte, since it may echo in bursts.
func (t *transfer) readEcho(last bool) ([]byte, error) {
	if last {
		return t.link.ReadN(1)
	}
	return t.readBuffered()
}
