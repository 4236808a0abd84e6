// Package escape holds the bidirectional table behind JSON string escaping:
// the encoder's escape logic and the decoder's unescape logic both derive
// from the same pair list.
package escape

import "strings"

var pairs = [...]struct{ raw, esc byte }{
	{'"', '"'},
	{'\\', '\\'},
	{'/', '/'},
	{'\b', 'b'},
	{'\f', 'f'},
	{'\n', 'n'},
	{'\r', 'r'},
	{'\t', 't'},
}

var (
	toEsc   [256]byte
	fromEsc [256]byte
)

func init() {
	for _, p := range pairs {
		toEsc[p.raw] = p.esc
		fromEsc[p.esc] = p.raw
	}
}

// Escapee reports the escape letter for a raw byte that has a two-character
// escape form.
func Escapee(raw byte) (byte, bool) {
	e := toEsc[raw]
	return e, e != 0
}

// Unescape reports the raw byte for an escape letter.
func Unescape(esc byte) (byte, bool) {
	r := fromEsc[esc]
	return r, r != 0
}

// Printable reports whether an ASCII byte may appear verbatim inside an
// encoded string. Bytes outside ASCII pass through as UTF-8 and are not
// consulted here.
func Printable(b byte) bool { return b >= 0x20 && b != 0x7f }

// HexVal decodes one hexadecimal digit of a \uXXXX escape.
func HexVal(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}

const hexDigits = "0123456789abcdef"

// AppendByte appends one character of an encoded string, escaping it when the
// table or the printability check demands it. Non-printable ASCII bytes are
// written as \u00XX; bytes >= 0x80 pass through as UTF-8.
func AppendByte(b *strings.Builder, c byte) {
	if e, ok := Escapee(c); ok {
		b.WriteByte('\\')
		b.WriteByte(e)
		return
	}
	if c < 0x80 && !Printable(c) {
		b.WriteString(`\u00`)
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0xf])
		return
	}
	b.WriteByte(c)
}

// Append appends the escaped form of s.
func Append(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		AppendByte(b, s[i])
	}
}
