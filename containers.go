package shapejson

import (
	"sort"
	"strings"
)

// Container adaptation: insertion strategies decouple the parser from the
// destination's concrete representation. Growable destinations append and
// report an unbounded extent; fixed-capacity destinations write by index and
// silently drop anything past their extent. Map insertion happens directly at
// the call site (last write wins).

type elemSink[E any] interface {
	// put stores the i-th parsed element, or drops it when i is past the
	// destination's extent.
	put(i int, e E)
}

type appendSink[E any] struct{ dst *[]E }

func (s appendSink[E]) put(_ int, e E) { *s.dst = append(*s.dst, e) }

type boundedSink[E any] struct{ dst []E }

func (s boundedSink[E]) put(i int, e E) {
	if i < len(s.dst) {
		s.dst[i] = e
	}
}

// Character sinks mirror the element strategies for string targets. Raw
// input bytes arrive via putByte; decoded \uXXXX code units arrive via
// putRune. Growable targets store code units as UTF-8; byte-oriented targets
// store the code unit truncated to a byte.

type charSink interface {
	putByte(b byte)
	putRune(r rune)
}

type builderSink struct{ b *strings.Builder }

func (s builderSink) putByte(b byte) { s.b.WriteByte(b) }
func (s builderSink) putRune(r rune) { s.b.WriteRune(r) }

type byteBufSink struct {
	buf   []byte
	limit int
	n     int
}

func (s *byteBufSink) putByte(b byte) {
	if s.n < s.limit {
		s.buf[s.n] = b
		s.n++
	}
}

func (s *byteBufSink) putRune(r rune) { s.putByte(byte(r)) }

type singleByteSink struct {
	dst *byte
	n   int
}

func (s *singleByteSink) putByte(b byte) {
	if s.n == 0 {
		*s.dst = b
	}
	s.n++
}

func (s *singleByteSink) putRune(r rune) { s.putByte(byte(r)) }

// sortedKeys defines the enumeration order the stringifier uses for Go maps,
// which carry no intrinsic order of their own.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
