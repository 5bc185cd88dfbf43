package jsonschema

import (
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// EscapeSegment escapes a single JSON Pointer reference-token per RFC 6901:
// "~" becomes "~0", "/" becomes "~1". Array indices are not escaped (they
// are rendered as decimal integers by PushIndex instead).
func EscapeSegment(segment string) string {
	out := make([]byte, 0, len(segment))
	for i := 0; i < len(segment); i++ {
		switch segment[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, segment[i])
		}
	}
	return string(out)
}

// UnescapeSegment reverses EscapeSegment.
func UnescapeSegment(segment string) string {
	out := make([]byte, 0, len(segment))
	for i := 0; i < len(segment); i++ {
		if segment[i] == '~' && i+1 < len(segment) {
			switch segment[i+1] {
			case '0':
				out = append(out, '~')
				i++
				continue
			case '1':
				out = append(out, '/')
				i++
				continue
			}
		}
		out = append(out, segment[i])
	}
	return string(out)
}

// Location is an immutable JSON Pointer path used to report where a
// validation error occurred, in either the instance or the schema. The
// lazy form (segments still on the call stack) avoids allocation until an
// error actually needs to be materialized; String() performs that
// materialization on demand.
type Location struct {
	parent   *Location
	segment  string
	hasIndex bool
	index    int
}

// RootLocation is the empty JSON Pointer, "".
var RootLocation = Location{}

// PushProperty returns a new Location with a property-name segment
// appended. The receiver is never mutated, so callers can keep validating
// sibling properties against the same parent Location concurrently.
func (l Location) PushProperty(name string) Location {
	return Location{parent: &l, segment: name}
}

// PushIndex returns a new Location with an array-index segment appended.
func (l Location) PushIndex(i int) Location {
	return Location{parent: &l, hasIndex: true, index: i}
}

// String materializes the location into a JSON Pointer string ("" for the
// root, "/a/0/b" otherwise).
func (l Location) String() string {
	var tokens []string
	for cur := &l; cur != nil && cur.parent != nil; cur = cur.parent {
		if cur.hasIndex {
			tokens = append(tokens, strconv.Itoa(cur.index))
		} else {
			tokens = append(tokens, cur.segment)
		}
	}
	// tokens were collected innermost-first; reverse them.
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	if len(tokens) == 0 {
		return ""
	}
	return jsonpointer.Format(tokens...)
}
