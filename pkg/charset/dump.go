package charset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DumpWidth is the number of characters per Dump row.
const DumpWidth = 32

// Dump writes data translated through character set 0, DumpWidth
// characters per row, each row prefixed with its offset.
func Dump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += DumpWidth {
		end := off + DumpWidth
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(bw, "%04x: %s\n", off, RawDump(data[off:end]))
	}
	return bw.Flush()
}

const (
	fullwidthOffset  = 0xff01 - 0x21
	ideographicSpace = '\u3000'
	overline         = '\u0305'
)

// glyph renders c in a cell as wide as a kanji. ASCII becomes fullwidth,
// narrow characters are padded.
func glyph(c rune) string {
	switch {
	case c == ' ':
		return string(ideographicSpace)
	case c < 0x7f:
		return string(c + fullwidthOffset)
	case c == '√':
		return string([]rune{c, ' ', overline})
	case c < 0x3000:
		return " " + string(c)
	}
	return string(c)
}

// CharDump writes both character sets as 16x16 grids, rows and columns
// labeled by the high and low nibble of the byte. Programmable slots show
// as C1, C2, ...
func CharDump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for n := 0; n < 2; n++ {
		fmt.Fprintf(bw, "character set %d\n\n", n)
		bw.WriteString("     ")
		for col := 0; col < 16; col++ {
			fmt.Fprintf(bw, " +%X", col)
		}
		bw.WriteString("\n")

		set := Set(n)
		for row := 0; row < 16; row++ {
			cells := make([]string, 16)
			placeholder := 0
			for col := range cells {
				c := set[row*16+col]
				if c == Placeholder {
					placeholder++
					cells[col] = fmt.Sprintf("C%d", placeholder)
				} else {
					cells[col] = glyph(c)
				}
			}
			fmt.Fprintf(bw, " %02X : %s\n", row*16, strings.Join(cells, " "))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
