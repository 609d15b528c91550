// Package clone implements the VX-7R clone transfer protocol.
//
// An image moves in three segments of 10, 8 and 16193 bytes. Receiving,
// the radio sends each segment and the host acknowledges the first two
// with ACK (0x06). Sending, the host writes one byte at a time and waits
// for the radio to echo it back before the next one; the first two blocks
// are paced with break signals and closed by an ACK exchange, the final
// block is neither paced nor acknowledged.
//
// Some USB serial adapters double a 0xFF byte and merge it with the
// following ACK, so the echo reads FF FF 06. In a non-final block that is
// treated as the end of the block and the transfer moves on. Any echo
// mismatch in the final block aborts the transfer with an EchoMismatchError.
//
// Engine runs the protocol over an open link.Link. Session adds ownership of
// the link: it opens it, runs the engine and releases it on every path,
// including cancellation.
package clone
