// Package link provides the serial connection to the radio.
//
// Link is the capability the transfer protocol is written against. Open
// returns the go.bug.st/serial backed implementation configured with the
// fixed VX-7R clone parameters: 19200 baud, 8 data bits, no parity,
// 2 stop bits and a 30 second read timeout.
package link
