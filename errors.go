package shapejson

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. Malformed input is the only runtime error class: pairing an
// incompatible value type with a descriptor is rejected by the compiler and
// never surfaces here.
const (
	CodeParseError   = "parse_error"
	CodeOverflow     = "overflow"
	CodeBadEscape    = "bad_escape"
	CodeUnterminated = "unterminated_string"
	CodeElementCount = "element_count"
)

// Issue describes a single parse failure.
type Issue struct {
	Code    string
	Message string
	Offset  int // byte offset reached in the input
}

// Issues is a collection of parse failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at offset %d", it.Code, it.Offset)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
