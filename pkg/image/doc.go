// Package image provides the VX-7R clone image layout and its checksums.
//
// A clone image is the complete 16211-byte memory snapshot exchanged with
// the radio. Three checkbytes protect it: the first two each cover the 127
// bytes in front of them, the last one (which is also the final byte of the
// image) covers every other byte, checkbytes included.
//
// Images read from or about to be written to the radio are normalized with
// Corrected. Stored files are only validated with Verify or ValidateFile.
package image
