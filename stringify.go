package shapejson

import (
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/shapejson/shapejson/internal/escape"
)

// Format is the stringifier's formatting policy.
type Format struct {
	// Dense suppresses all optional inter-token spacing.
	Dense bool
	// NewlineElements places composite array and object children on their
	// own indented lines.
	NewlineElements bool
	// NewlineTrivialArrays extends newlining to arrays and objects whose
	// element descriptor is trivial; otherwise those stay on one line even
	// when NewlineElements is set.
	NewlineTrivialArrays bool
	// Indent is the per-level indentation used when newlining. Defaults to
	// a tab.
	Indent string
}

// Built-in formatting configurations.
var (
	Dense  = Format{Dense: true}
	Pretty = Format{NewlineElements: true}
)

// Stringify encodes v as JSON text according to d. The default formatting is
// Dense. Stringification never fails: any value matched to a legal
// descriptor is representable as JSON text.
func Stringify[T any](v T, d Descriptor[T], f ...Format) string {
	w := newWriter(f)
	d.write(w, v)
	return w.b.String()
}

// Write encodes v to an io.Writer. Only the writer's own error can surface.
func Write[T any](out io.Writer, v T, d Descriptor[T], f ...Format) error {
	w := newWriter(f)
	d.write(w, v)
	_, err := io.WriteString(out, w.b.String())
	return err
}

func newWriter(f []Format) *writer {
	cfg := Dense
	if len(f) > 0 {
		cfg = f[len(f)-1]
	}
	if cfg.Indent == "" {
		cfg.Indent = "\t"
	}
	return &writer{f: cfg}
}

// writer is the per-call stringify state: the output accumulator, the
// formatting policy, and the current indentation depth.
type writer struct {
	b     strings.Builder
	f     Format
	depth int
}

func (w *writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString(w.f.Indent)
	}
}

func (w *writer) descend() {
	w.b.WriteByte('\n')
	w.depth++
	w.indent()
}

func (w *writer) ascend() {
	w.b.WriteByte('\n')
	w.depth--
	w.indent()
}

// sep writes the between-children separator.
func (w *writer) sep(nl bool) {
	w.b.WriteByte(',')
	switch {
	case nl:
		w.b.WriteByte('\n')
		w.indent()
	case !w.f.Dense:
		w.b.WriteByte(' ')
	}
}

// key writes an object key and its separating colon.
func (w *writer) key(name string) {
	w.b.WriteByte('"')
	escape.Append(&w.b, name)
	w.b.WriteByte('"')
	w.b.WriteByte(':')
	if !w.f.Dense {
		w.b.WriteByte(' ')
	}
}

// newlines reports whether children with the given triviality go on their
// own lines under the current policy.
func (w *writer) newlines(trivialElems bool) bool {
	if trivialElems {
		return w.f.NewlineTrivialArrays
	}
	return w.f.NewlineElements
}

// ---- leaf descriptors ----

func (boolDesc[T]) write(w *writer, v T) {
	if bool(v) {
		w.b.WriteString(litTrue)
	} else {
		w.b.WriteString(litFalse)
	}
}

func (numberDesc[T]) write(w *writer, v T) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32:
		w.b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		w.b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w.b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	default:
		w.b.WriteString(strconv.FormatInt(rv.Int(), 10))
	}
}

func (stringDesc[T]) write(w *writer, v T) {
	w.b.WriteByte('"')
	escape.Append(&w.b, string(v))
	w.b.WriteByte('"')
}

func (charDesc) write(w *writer, v byte) {
	w.b.WriteByte('"')
	escape.AppendByte(&w.b, v)
	w.b.WriteByte('"')
}

func (charsDesc) write(w *writer, v []byte) {
	w.b.WriteByte('"')
	for _, c := range v {
		if c == 0 {
			break
		}
		escape.AppendByte(&w.b, c)
	}
	w.b.WriteByte('"')
}

// ---- composite descriptors ----

func (a arrayDesc[E]) write(w *writer, v []E) { writeSeq(w, v, a.elem) }

func (b boundedDesc[E]) write(w *writer, v []E) { writeSeq(w, v, b.elem) }

func writeSeq[E any](w *writer, v []E, elem Descriptor[E]) {
	w.b.WriteByte('[')
	if len(v) == 0 {
		w.b.WriteByte(']')
		return
	}
	nl := w.newlines(elem.trivial())
	pad := elem.trivial() && !nl && !w.f.Dense
	if pad {
		w.b.WriteByte(' ')
	}
	if nl {
		w.descend()
	}
	for i := range v {
		if i > 0 {
			w.sep(nl)
		}
		elem.write(w, v[i])
	}
	if pad {
		w.b.WriteByte(' ')
	}
	if nl {
		w.ascend()
	}
	w.b.WriteByte(']')
}

func (o objectDesc[V]) write(w *writer, v map[string]V) {
	w.b.WriteByte('{')
	if len(v) == 0 {
		w.b.WriteByte('}')
		return
	}
	nl := w.newlines(o.elem.trivial())
	pad := o.elem.trivial() && !nl && !w.f.Dense
	if pad {
		w.b.WriteByte(' ')
	}
	if nl {
		w.descend()
	}
	for i, k := range sortedKeys(v) {
		if i > 0 {
			w.sep(nl)
		}
		w.key(k)
		o.elem.write(w, v[k])
	}
	if pad {
		w.b.WriteByte(' ')
	}
	if nl {
		w.ascend()
	}
	w.b.WriteByte('}')
}

func (fl fieldList[T]) write(w *writer, v T) {
	w.b.WriteByte('{')
	if len(fl) == 0 {
		w.b.WriteByte('}')
		return
	}
	nl := w.f.NewlineElements
	if nl {
		w.descend()
	} else if !w.f.Dense {
		w.b.WriteByte(' ')
	}
	for i := range fl {
		if i > 0 {
			w.sep(nl)
		}
		w.key(fl[i].name)
		fl[i].write(w, &v)
	}
	if nl {
		w.ascend()
	} else if !w.f.Dense {
		w.b.WriteByte(' ')
	}
	w.b.WriteByte('}')
}

// elementList emits a positional array with no optional spacing; position is
// meaning, so the encoding stays minimal in every format.
func (el elementList[T]) write(w *writer, v T) {
	w.b.WriteByte('[')
	for i := range el {
		if i > 0 {
			w.b.WriteByte(',')
		}
		el[i].write(w, &v)
	}
	w.b.WriteByte(']')
}

func (o optionalDesc[V]) write(w *writer, v *V) {
	if v == nil {
		w.b.WriteString(litNull)
		return
	}
	o.inner.write(w, *v)
}
