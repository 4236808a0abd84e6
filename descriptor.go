package shapejson

// A Descriptor declares how a value of type T maps to and from a JSON
// construct. Descriptors are immutable after construction and safe to share
// across any number of concurrent Parse and Stringify calls.
//
// A descriptor is either trivial (Bool, Number, String, Char, Chars) or
// composite (Array, Bounded, Object, Fields, Elements); Optional takes its
// classification from the wrapped descriptor. The classification drives the
// stringifier's newline placement.
type Descriptor[T any] interface {
	// parse decodes the value at pos into dst and reports the new position.
	// On failure the returned position indicates how far parsing progressed.
	parse(s *scanner, pos int, dst *T) (int, bool)
	// write appends the JSON encoding of v to the writer. It cannot fail.
	write(w *writer, v T)
	trivial() bool
}

// Numeric spans the member types a Number descriptor may describe.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Bool returns the descriptor for the JSON literals true and false.
func Bool[T ~bool]() Descriptor[T] { return boolDesc[T]{} }

// Number returns the descriptor for a JSON numeric literal. Integer targets
// accept only integral literals; fractional or exponent forms fail, as do
// conversions that overflow or underflow the target's range.
//
// Float targets holding a non-finite value stringify as NaN, +Inf or -Inf,
// which is not valid JSON and will not parse back; callers must keep
// non-finite values out of encoded data.
func Number[T Numeric]() Descriptor[T] { return numberDesc[T]{} }

// String returns the descriptor for a JSON string decoded into a growable
// character sequence.
func String[T ~string]() Descriptor[T] { return stringDesc[T]{} }

// Char returns the descriptor for a JSON string stored as a single character.
// Characters past the first are silently dropped.
func Char() Descriptor[byte] { return charDesc{} }

// Chars returns the descriptor for a JSON string written into a fixed-size
// byte buffer. Characters beyond the buffer's capacity are silently dropped;
// by default the buffer is NUL-terminated after the decoded content (see
// ParseOpt). Stringification stops at the first NUL byte.
func Chars() Descriptor[[]byte] { return charsDesc{} }

// Array returns the descriptor for a homogeneous JSON array decoded by
// appending to a growable slice. Parsing appends to whatever the destination
// already holds; callers wanting a fresh result parse into an empty slice.
func Array[E any](elem Descriptor[E]) Descriptor[[]E] { return arrayDesc[E]{elem: elem} }

// Bounded returns the descriptor for a homogeneous JSON array written into a
// fixed-capacity slice by index. Elements beyond the slice's length are
// parsed (and validated) but silently dropped. Stringification emits every
// slot of the slice.
func Bounded[E any](elem Descriptor[E]) Descriptor[[]E] { return boundedDesc[E]{elem: elem} }

// Object returns the descriptor for a homogeneous string-keyed JSON object.
// Duplicate keys follow the map's insertion policy: last write wins.
// Stringification enumerates keys in sorted order.
func Object[V any](elem Descriptor[V]) Descriptor[map[string]V] { return objectDesc[V]{elem: elem} }

// Optional wraps a descriptor so the corresponding value may additionally be
// absent, represented in JSON as the literal null. A nil pointer is the
// absent state.
func Optional[V any](d Descriptor[V]) Descriptor[*V] { return optionalDesc[V]{inner: d} }

// A Field binds one fixed JSON object key to a member of the record type T.
type Field[T any] struct {
	name  string
	parse func(s *scanner, pos int, dst *T) (int, bool)
	write func(w *writer, v *T)
}

// Named builds a Field from a key name, an accessor projecting into the
// record, and the descriptor for the member. The accessor is bound at schema
// construction time; the descriptor never owns the record.
func Named[T, V any](name string, access func(*T) *V, d Descriptor[V]) Field[T] {
	return Field[T]{
		name: name,
		parse: func(s *scanner, pos int, dst *T) (int, bool) {
			return d.parse(s, pos, access(dst))
		},
		write: func(w *writer, v *T) { d.write(w, *access(v)) },
	}
}

// Fields returns the descriptor for a JSON object with fixed, known keys
// mapped onto members of the record type T. List order fixes encoding order;
// decoding looks keys up by exact, case-sensitive match. Unknown keys are
// skipped, and a key absent from the input leaves the member's pre-call
// value untouched.
func Fields[T any](fields ...Field[T]) Descriptor[T] { return fieldList[T](fields) }

// An Element binds one position of a JSON array to a member of the record
// type T.
type Element[T any] struct {
	parse func(s *scanner, pos int, dst *T) (int, bool)
	write func(w *writer, v *T)
}

// Elem builds an Element from an accessor and the member's descriptor.
func Elem[T, V any](access func(*T) *V, d Descriptor[V]) Element[T] {
	return Element[T]{
		parse: func(s *scanner, pos int, dst *T) (int, bool) {
			return d.parse(s, pos, access(dst))
		},
		write: func(w *writer, v *T) { d.write(w, *access(v)) },
	}
}

// Elements returns the descriptor for a positional encoding of the record
// type T: a JSON array whose position, not name, selects the target member.
// Decoding requires exactly len(elems) entries.
func Elements[T any](elems ...Element[T]) Descriptor[T] { return elementList[T](elems) }

// ---- descriptor kinds ----

type boolDesc[T ~bool] struct{}

type numberDesc[T Numeric] struct{}

type stringDesc[T ~string] struct{}

type charDesc struct{}

type charsDesc struct{}

type arrayDesc[E any] struct{ elem Descriptor[E] }

type boundedDesc[E any] struct{ elem Descriptor[E] }

type objectDesc[V any] struct{ elem Descriptor[V] }

type optionalDesc[V any] struct{ inner Descriptor[V] }

type fieldList[T any] []Field[T]

type elementList[T any] []Element[T]

func (boolDesc[T]) trivial() bool    { return true }
func (numberDesc[T]) trivial() bool  { return true }
func (stringDesc[T]) trivial() bool  { return true }
func (charDesc) trivial() bool       { return true }
func (charsDesc) trivial() bool      { return true }
func (arrayDesc[E]) trivial() bool   { return false }
func (boundedDesc[E]) trivial() bool { return false }
func (objectDesc[V]) trivial() bool  { return false }
func (fieldList[T]) trivial() bool   { return false }
func (elementList[T]) trivial() bool { return false }

func (o optionalDesc[V]) trivial() bool { return o.inner.trivial() }
