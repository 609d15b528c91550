// Package charset maps VX-7R memory bytes to the characters the radio
// displays.
//
// The radio knows 512 characters in two sets of 256. Set 0 holds digits,
// latin letters, symbols and kana, and is the one used for memory tags.
// Set 1 continues with katakana and kanji, its last slots are user
// programmable kanji.
package charset

import "strings"

// SetSize is the number of characters in a character set.
const SetSize = 256

// Placeholder marks user programmable slots at the end of set 1.
const Placeholder rune = 0

const (
	digits     = "0123456789"
	alphabetic = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	symbols    = ".,:;!\"#$%&'()*+-⋅=<>?@[￥]^_\\{|}→←" +
		"▲▼~‼÷×√λ" +
		"μπφωΩ℃℉£" +
		"±∫♪♫♭⎵「」" +
		"·♂♀〒"
)

// Unicode block starts.
const (
	hiraganaBase rune = 0x3040
	katakanaBase rune = 0x30a0
)

// span selects base+start, base+start+step, ... below base+end.
type span struct {
	start, end, step int
}

// The radio orders kana by consonant row, vowels first, then the voiced
// and small forms.
var (
	kanaRows = []span{
		{0x02, 0x0b, 2}, {0x0b, 0x14, 2}, {0x15, 0x1e, 2}, {0x1f, 0x22, 2},
		{0x24, 0x29, 1}, {0x2a, 0x2f, 2}, {0x2f, 0x3c, 3}, {0x3f, 0x43, 1},
		{0x44, 0x49, 2}, {0x49, 0x4e, 1},
	}
	hiraganaWa = []span{{0x4f, 0x54, 1}}
	// wi and we are obsolete in katakana
	katakanaWa = []span{{0x4f, 0x50, 1}, {0x52, 0x54, 1}}
	kanaVoiced = []span{{0x0c, 0x15, 2}, {0x16, 0x1f, 2}, {0x20, 0x23, 2}, {0x25, 0x2a, 2}}
	kanaHalf   = []span{{0x30, 0x3d, 3}, {0x31, 0x3e, 3}}
	kanaSmall  = []span{{0x01, 0x0a, 2}, {0x43, 0x48, 2}, {0x23, 0x24, 1}}
	// CJK full stop and comma
	hiraganaPunct = "。、"
)

// kanji in radio order.
var kanji = []rune{
	0x611b, 0x5727, 0x4f0a, 0x4f4d, 0x4e95, 0x80b2, 0x4e00, 0x8328,
	0x82f1, 0x885b, 0x8d8a, 0x5186, 0x9060, 0x6a2a, 0x5ca1, 0x6c96,
	0x5c4b, 0x6e29, 0x97f3, 0x5316, 0x6b4c, 0x6cb3, 0x706b, 0x9999,
	0x9e7f, 0x8cc0, 0x6d77, 0x676e, 0x9694, 0x5b66, 0x6f5f, 0x9593,
	0x95a2, 0x83c5, 0x5ca9, 0x5893, 0x6a5f, 0x6c17, 0x57ce, 0x5c90,
	0x6025, 0x6551, 0x4e5d, 0x4eac, 0x6559, 0x6a4b, 0x7389, 0x7981,
	0x91d1, 0x533a, 0x7a7a, 0x718a, 0x6817, 0x7fa4, 0x90e1, 0x5f62,
	0x8b66, 0x6708, 0x770c, 0x539f, 0x8a00, 0x9650, 0x5eab, 0x8fbc,
	0x53e4, 0x4e94, 0x8a9e, 0x53e3, 0x5e83, 0x822a, 0x9ad8, 0x5408,
	0x523b, 0x56fd, 0x9ed2, 0x6839, 0x4f50, 0x707d, 0x57fc, 0x897f,
	0x5742, 0x5d0e, 0x5bdf, 0x672d, 0x6ca2, 0x6fa4, 0x4e09, 0x5c71,
	0x56db, 0x58eb, 0x5e02, 0x6b62, 0x7d19, 0x6ecb, 0x5150, 0x6642,
	0x793a, 0x81ea, 0x4e03, 0x53d6, 0x624b, 0x6b8a, 0x9152, 0x5dde,
	0x79cb, 0x96c6, 0x5341, 0x91cd, 0x66f8, 0x5c0f, 0x6d88, 0x4e0a,
	0x65b0, 0x68ee, 0x795e, 0x63c4, 0x5236, 0x9752, 0x9759, 0x53f3,
	0x8a2d, 0x4ed9, 0x5343, 0x5ddd, 0x7dda, 0x8239, 0x76f8, 0x7d9b,
	0x9001, 0x675f, 0x6e2c, 0x7d9a, 0x6751, 0x968a, 0x53f0, 0x5927,
	0x7b2c, 0x6edd, 0x5358, 0x77e5, 0x4e2d, 0x5e81, 0x671d, 0x753a,
	0x8074, 0x9577, 0x5cf6, 0x5b9a, 0x9244, 0x5929, 0x7530, 0x96fb,
	0x6238, 0x90fd, 0x5ea6, 0x571f, 0x5cf6, 0x6771, 0x76d7, 0x85e4,
	0x9053, 0x5fb3, 0x7279, 0x8aad, 0x6803, 0x5948, 0x7e04, 0x4e8c,
	0x65e5, 0x6cbc, 0x6fc3, 0x80fd, 0x7109, 0x58f2, 0x8236, 0x516b,
	0x962a, 0x98ef, 0x5c3e, 0x5a9b, 0x767e, 0x8868, 0x79d2, 0x6d5c,
	0x5bcc, 0x5e9c, 0x961c, 0x6b66, 0x90e8, 0x5e45, 0x798f, 0x5206,
	0x6587, 0x9593, 0x5175, 0x4e26, 0x653e, 0x82b3, 0x9632, 0x5317,
	0x5e4c, 0x672c, 0x6bce, 0x4e07, 0x5b98, 0x7121, 0x540d, 0x6728,
	0x8c37, 0x91ce, 0x696d, 0x967d, 0x7d61, 0x68a8, 0x826f, 0x6797,
	0x9234, 0x9023, 0x8def, 0x516d, 0x548c,
}

func pick(base rune, spans ...[]span) string {
	var sb strings.Builder
	for _, group := range spans {
		for _, s := range group {
			for i := s.start; i < s.end; i += s.step {
				sb.WriteRune(base + rune(i))
			}
		}
	}
	return sb.String()
}

func hiragana() string {
	return pick(hiraganaBase, kanaRows, hiraganaWa, kanaVoiced) +
		hiraganaPunct +
		pick(hiraganaBase, kanaHalf, kanaSmall)
}

func katakana() string {
	return pick(katakanaBase, kanaRows, katakanaWa, kanaVoiced, kanaHalf, kanaSmall)
}

// table holds both character sets, the unused tail of set 1 is
// Placeholder.
var table = buildTable()

func buildTable() [2 * SetSize]rune {
	var t [2 * SetSize]rune
	chars := []rune(digits + " " + alphabetic + strings.ToLower(alphabetic) +
		symbols + hiragana() + katakana() + string(kanji))
	copy(t[:], chars)
	return t
}

// Set returns the characters of character set n, 0 or 1.
func Set(n int) []rune {
	set := make([]rune, SetSize)
	copy(set, table[n*SetSize:(n+1)*SetSize])
	return set
}

// Char returns the character of set 0 displayed for b.
func Char(b byte) rune {
	return table[b]
}

// RawDump translates data through character set 0.
func RawDump(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for _, b := range data {
		sb.WriteRune(Char(b))
	}
	return sb.String()
}
