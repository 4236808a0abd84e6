package shapejson

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/shapejson/shapejson/internal/escape"
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	// RawCharBufs leaves Chars buffers unterminated instead of writing a NUL
	// byte after the decoded content.
	RawCharBufs bool
}

// Parse decodes text into the caller-owned value dst according to d. It
// returns the position the parser reached in all cases; on malformed input
// the error is an Issues value carrying a code and the byte offset of the
// failure, and dst's partially-written state is unspecified. Leading
// whitespace is skipped; input past a complete value is left unread. Parse
// never panics on malformed input.
func Parse[T any](text string, dst *T, d Descriptor[T], opts ...ParseOpt) (int, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	s := &scanner{text: text, opt: opt}
	pos := 0
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	end, ok := d.parse(s, pos, dst)
	if ok {
		return end, nil
	}
	iss := s.err
	if iss.Code == "" {
		iss = Issue{Code: CodeParseError, Message: "malformed input", Offset: end}
	}
	return end, Issues{iss}
}

// scanner is the per-call parse state: the complete input text and the first
// failure recorded on the way down.
type scanner struct {
	text string
	opt  ParseOpt
	err  Issue
}

func (s *scanner) fail(pos int, code, msg string) (int, bool) {
	if s.err.Code == "" {
		s.err = Issue{Code: code, Message: msg, Offset: pos}
	}
	return pos, false
}

func (s *scanner) at(pos int, c byte) bool { return pos < len(s.text) && s.text[pos] == c }

func (s *scanner) lit(pos int, lit string) bool {
	return pos <= len(s.text) && strings.HasPrefix(s.text[pos:], lit)
}

// skipSpace advances past inter-token whitespace and fails on premature end
// of input.
func (s *scanner) skipSpace(pos int) (int, bool) {
	for pos < len(s.text) && isSpace(s.text[pos]) {
		pos++
	}
	if pos >= len(s.text) {
		return s.fail(pos, CodeParseError, "unexpected end of input")
	}
	return pos, true
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ---- leaf descriptors ----

func (boolDesc[T]) parse(s *scanner, pos int, dst *T) (int, bool) {
	switch {
	case s.lit(pos, litTrue):
		*dst = true
		return pos + len(litTrue), true
	case s.lit(pos, litFalse):
		*dst = false
		return pos + len(litFalse), true
	}
	return s.fail(pos, CodeParseError, "expected true or false")
}

func (numberDesc[T]) parse(s *scanner, pos int, dst *T) (int, bool) {
	end, ok := scanNumber(s.text, pos)
	if !ok {
		return s.fail(pos, CodeParseError, "expected number")
	}
	lit := s.text[pos:end]
	rv := reflect.ValueOf(dst).Elem()
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(lit, rv.Type().Bits())
		if err != nil {
			return s.failNumber(pos, err)
		}
		rv.SetFloat(f)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if lit[0] == '-' {
			return s.fail(pos, CodeOverflow, "negative literal for unsigned target")
		}
		u, err := strconv.ParseUint(strings.TrimPrefix(lit, "+"), 10, rv.Type().Bits())
		if err != nil {
			return s.failNumber(pos, err)
		}
		rv.SetUint(u)
	default:
		i, err := strconv.ParseInt(lit, 10, rv.Type().Bits())
		if err != nil {
			return s.failNumber(pos, err)
		}
		rv.SetInt(i)
	}
	return end, true
}

func (s *scanner) failNumber(pos int, err error) (int, bool) {
	if errors.Is(err, strconv.ErrRange) {
		return s.fail(pos, CodeOverflow, "numeric literal out of target range")
	}
	return s.fail(pos, CodeParseError, "numeric literal does not fit target")
}

// scanNumber recognizes [+-]?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?.
// The leading + is a deliberate superset of strict JSON. A malformed
// fractional part or exponent is not consumed; the literal ends before it.
func scanNumber(text string, pos int) (int, bool) {
	i := pos
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	switch {
	case i < len(text) && text[i] == '0':
		i++
	case i < len(text) && text[i] >= '1' && text[i] <= '9':
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	default:
		return pos, false
	}
	if i+1 < len(text) && text[i] == '.' && isDigit(text[i+1]) {
		i += 2
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	if i+1 < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j+1 < len(text) && (text[j] == '+' || text[j] == '-') && isDigit(text[j+1]) {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}
	return i, true
}

func (stringDesc[T]) parse(s *scanner, pos int, dst *T) (int, bool) {
	var b strings.Builder
	end, ok := parseString(s, pos, builderSink{b: &b})
	if !ok {
		return end, false
	}
	*dst = T(b.String())
	return end, true
}

func (charDesc) parse(s *scanner, pos int, dst *byte) (int, bool) {
	return parseString(s, pos, &singleByteSink{dst: dst})
}

func (charsDesc) parse(s *scanner, pos int, dst *[]byte) (int, bool) {
	buf := *dst
	limit := len(buf)
	terminate := !s.opt.RawCharBufs
	if terminate && limit > 0 {
		limit--
	}
	sink := &byteBufSink{buf: buf, limit: limit}
	end, ok := parseString(s, pos, sink)
	if !ok {
		return end, false
	}
	if terminate && len(buf) > 0 {
		buf[sink.n] = 0
	}
	return end, true
}

// parseString scans a quoted string at pos, feeding decoded characters into
// the sink. Recognized escapes are the two-character table forms and \uXXXX
// interpreted as a single code unit (no surrogate-pair combination).
func parseString(s *scanner, pos int, sink charSink) (int, bool) {
	if !s.at(pos, '"') {
		return s.fail(pos, CodeParseError, "expected string")
	}
	i := pos + 1
	for i < len(s.text) && s.text[i] != '"' {
		c := s.text[i]
		if c != '\\' {
			sink.putByte(c)
			i++
			continue
		}
		i++
		if i >= len(s.text) {
			return s.fail(i, CodeBadEscape, "dangling escape at end of input")
		}
		e := s.text[i]
		if e == 'u' {
			if i+4 >= len(s.text) {
				return s.fail(i, CodeBadEscape, `incomplete \u escape`)
			}
			v := 0
			for k := 1; k <= 4; k++ {
				h, ok := escape.HexVal(s.text[i+k])
				if !ok {
					return s.fail(i+k, CodeBadEscape, `incomplete \u escape`)
				}
				v = v<<4 | h
			}
			sink.putRune(rune(v))
			i += 5
			continue
		}
		raw, ok := escape.Unescape(e)
		if !ok {
			return s.fail(i, CodeBadEscape, "unrecognized escape")
		}
		sink.putByte(raw)
		i++
	}
	if i >= len(s.text) {
		return s.fail(i, CodeUnterminated, "unterminated string")
	}
	return i + 1, true
}

// ---- composite descriptors ----

func (a arrayDesc[E]) parse(s *scanner, pos int, dst *[]E) (int, bool) {
	return parseSeq(s, pos, appendSink[E]{dst: dst}, a.elem)
}

func (b boundedDesc[E]) parse(s *scanner, pos int, dst *[]E) (int, bool) {
	return parseSeq(s, pos, boundedSink[E]{dst: *dst}, b.elem)
}

// parseSeq decodes a homogeneous JSON array, handing each element to the
// insertion strategy. Every element is parsed even when the sink drops it.
func parseSeq[E any](s *scanner, pos int, sink elemSink[E], elem Descriptor[E]) (int, bool) {
	if !s.at(pos, '[') {
		return s.fail(pos, CodeParseError, "expected '['")
	}
	pos, ok := s.skipSpace(pos + 1)
	if !ok {
		return pos, false
	}
	if s.text[pos] == ']' {
		return pos + 1, true
	}
	for i := 0; ; i++ {
		var e E
		next, ok := elem.parse(s, pos, &e)
		if !ok {
			return next, false
		}
		sink.put(i, e)
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		switch s.text[pos] {
		case ',':
			if pos, ok = s.skipSpace(pos + 1); !ok {
				return pos, false
			}
		case ']':
			return pos + 1, true
		default:
			return s.fail(pos, CodeParseError, "expected ',' or ']'")
		}
	}
}

func (o objectDesc[V]) parse(s *scanner, pos int, dst *map[string]V) (int, bool) {
	if !s.at(pos, '{') {
		return s.fail(pos, CodeParseError, "expected '{'")
	}
	if *dst == nil {
		*dst = make(map[string]V)
	}
	pos, ok := s.skipSpace(pos + 1)
	if !ok {
		return pos, false
	}
	if s.text[pos] == '}' {
		return pos + 1, true
	}
	for {
		var b strings.Builder
		next, ok := parseString(s, pos, builderSink{b: &b})
		if !ok {
			return next, false
		}
		key := b.String()
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		if s.text[pos] != ':' {
			return s.fail(pos, CodeParseError, "expected ':'")
		}
		if pos, ok = s.skipSpace(pos + 1); !ok {
			return pos, false
		}
		var val V
		if next, ok = o.elem.parse(s, pos, &val); !ok {
			return next, false
		}
		(*dst)[key] = val
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		switch s.text[pos] {
		case ',':
			if pos, ok = s.skipSpace(pos + 1); !ok {
				return pos, false
			}
		case '}':
			return pos + 1, true
		default:
			return s.fail(pos, CodeParseError, "expected ',' or '}'")
		}
	}
}

func (fl fieldList[T]) parse(s *scanner, pos int, dst *T) (int, bool) {
	if !s.at(pos, '{') {
		return s.fail(pos, CodeParseError, "expected '{'")
	}
	pos, ok := s.skipSpace(pos + 1)
	if !ok {
		return pos, false
	}
	if s.text[pos] == '}' {
		return pos + 1, true
	}
	for {
		var b strings.Builder
		next, ok := parseString(s, pos, builderSink{b: &b})
		if !ok {
			return next, false
		}
		key := b.String()
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		if s.text[pos] != ':' {
			return s.fail(pos, CodeParseError, "expected ':'")
		}
		if pos, ok = s.skipSpace(pos + 1); !ok {
			return pos, false
		}
		matched := false
		for i := range fl {
			if fl[i].name == key {
				if next, ok = fl[i].parse(s, pos, dst); !ok {
					return next, false
				}
				matched = true
				break
			}
		}
		if !matched {
			// Unknown keys are skipped, not rejected; the format stays
			// forward-compatible with fields this schema does not know.
			if next, ok = skipValue(s, pos); !ok {
				return next, false
			}
		}
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		switch s.text[pos] {
		case ',':
			if pos, ok = s.skipSpace(pos + 1); !ok {
				return pos, false
			}
		case '}':
			return pos + 1, true
		default:
			return s.fail(pos, CodeParseError, "expected ',' or '}'")
		}
	}
}

func (el elementList[T]) parse(s *scanner, pos int, dst *T) (int, bool) {
	if !s.at(pos, '[') {
		return s.fail(pos, CodeParseError, "expected '['")
	}
	pos, ok := s.skipSpace(pos + 1)
	if !ok {
		return pos, false
	}
	if len(el) == 0 {
		if s.text[pos] != ']' {
			return s.fail(pos, CodeElementCount, "expected ']'")
		}
		return pos + 1, true
	}
	for i := range el {
		next, ok := el[i].parse(s, pos, dst)
		if !ok {
			return next, false
		}
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		if i+1 < len(el) {
			if s.text[pos] != ',' {
				return s.fail(pos, CodeElementCount, "expected ','")
			}
			if pos, ok = s.skipSpace(pos + 1); !ok {
				return pos, false
			}
		}
	}
	if s.text[pos] != ']' {
		return s.fail(pos, CodeElementCount, "expected ']'")
	}
	return pos + 1, true
}

func (o optionalDesc[V]) parse(s *scanner, pos int, dst **V) (int, bool) {
	if s.lit(pos, litNull) {
		*dst = nil
		return pos + len(litNull), true
	}
	v := new(V)
	pos, ok := o.inner.parse(s, pos, v)
	if ok {
		*dst = v
	}
	return pos, ok
}

// ---- ignore ----

// skipValue recognizes and discards any syntactically well-formed JSON value
// without materializing it.
func skipValue(s *scanner, pos int) (int, bool) {
	if pos >= len(s.text) {
		return s.fail(pos, CodeParseError, "unexpected end of input")
	}
	switch c := s.text[pos]; {
	case c == '"':
		return skipString(s, pos)
	case c == '[':
		return skipComposite(s, pos, ']', false)
	case c == '{':
		return skipComposite(s, pos, '}', true)
	case s.lit(pos, litTrue):
		return pos + len(litTrue), true
	case s.lit(pos, litFalse):
		return pos + len(litFalse), true
	case s.lit(pos, litNull):
		return pos + len(litNull), true
	default:
		if end, ok := scanNumber(s.text, pos); ok {
			return end, true
		}
		return s.fail(pos, CodeParseError, "malformed value")
	}
}

func skipString(s *scanner, pos int) (int, bool) {
	if !s.at(pos, '"') {
		return s.fail(pos, CodeParseError, "expected string")
	}
	i := pos + 1
	for i < len(s.text) && s.text[i] != '"' {
		if s.text[i] == '\\' {
			i++
			if i >= len(s.text) {
				return s.fail(i, CodeBadEscape, "dangling escape at end of input")
			}
		}
		i++
	}
	if i >= len(s.text) {
		return s.fail(i, CodeUnterminated, "unterminated string")
	}
	return i + 1, true
}

func skipComposite(s *scanner, pos int, closer byte, keyed bool) (int, bool) {
	pos, ok := s.skipSpace(pos + 1)
	if !ok {
		return pos, false
	}
	if s.text[pos] == closer {
		return pos + 1, true
	}
	for {
		if keyed {
			next, ok := skipString(s, pos)
			if !ok {
				return next, false
			}
			if pos, ok = s.skipSpace(next); !ok {
				return pos, false
			}
			if s.text[pos] != ':' {
				return s.fail(pos, CodeParseError, "expected ':'")
			}
			if pos, ok = s.skipSpace(pos + 1); !ok {
				return pos, false
			}
		}
		next, ok := skipValue(s, pos)
		if !ok {
			return next, false
		}
		if pos, ok = s.skipSpace(next); !ok {
			return pos, false
		}
		switch s.text[pos] {
		case ',':
			if pos, ok = s.skipSpace(pos + 1); !ok {
				return pos, false
			}
		case closer:
			return pos + 1, true
		default:
			return s.fail(pos, CodeParseError, "malformed value")
		}
	}
}
