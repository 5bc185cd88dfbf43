package jsonschema

import (
	"net/url"
)

// parsedURI wraps net/url.URL to give RFC 3986 parsing and resolution a stable,
// small surface for the rest of the compiler to depend on. Equality is
// scheme-and-path sensitive; fragments are handled separately by callers
// (SetFragment, splitRef).
type parsedURI struct {
	u *url.URL
}

// ParseURI parses an absolute or relative URI reference. Percent-encoded
// fragments are left encoded here; fragment interpretation happens later
// once the caller knows whether it is a JSON pointer or an anchor name.
func ParseURI(raw string) (parsedURI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return parsedURI{}, &InvalidURIError{Value: raw, Err: err}
	}
	return parsedURI{u: u}, nil
}

// String renders the URI back to its textual form.
func (u parsedURI) String() string {
	if u.u == nil {
		return ""
	}
	return u.u.String()
}

// IsAbsolute reports whether the URI has both a scheme and a host, i.e. it
// can serve as a base for resolving other references against.
func (u parsedURI) IsAbsolute() bool {
	return u.u != nil && u.u.Scheme != "" && u.u.Host != ""
}

// Fragment returns the URI's fragment, with the empty-string canonicalized
// to "no fragment" per §4.1 (an explicit "#" with nothing after it is
// indistinguishable from no fragment at all, and the specification says to
// treat them the same).
func (u parsedURI) Fragment() (string, bool) {
	if u.u == nil || u.u.Fragment == "" {
		return "", false
	}
	return u.u.Fragment, true
}

// ResolveAgainst resolves ref against base per RFC 3986. It fails with
// BaseHasFragment if base carries a non-empty fragment and ref also carries
// its own fragment component — a reference cannot be resolved relative to a
// location that is itself inside a fragment.
func ResolveAgainst(base, ref string) (string, error) {
	baseURI, err := ParseURI(base)
	if err != nil {
		return "", err
	}
	refURI, err := ParseURI(ref)
	if err != nil {
		return "", err
	}

	if bf, ok := baseURI.Fragment(); ok && bf != "" {
		if rf, ok := refURI.Fragment(); ok && rf != "" {
			return "", &BaseHasFragmentError{Base: base, Ref: ref}
		}
	}

	if baseURI.u == nil {
		return ref, nil
	}
	resolved := baseURI.u.ResolveReference(refURI.u)
	return resolved.String(), nil
}

// SetFragment returns a copy of raw with its fragment replaced. A nil
// fragment removes it entirely.
func SetFragment(raw string, fragment *string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if fragment == nil {
		u.Fragment = ""
		u.RawFragment = ""
		return u.String()
	}
	u.Fragment = *fragment
	return u.String()
}

// InvalidURIError reports a URI that failed RFC 3986 parsing.
type InvalidURIError struct {
	Value string
	Err   error
}

func (e *InvalidURIError) Error() string {
	return "invalid URI " + quote(e.Value) + ": " + e.Err.Error()
}

func (e *InvalidURIError) Unwrap() error { return e.Err }

// BaseHasFragmentError reports an attempt to resolve a fragment-bearing
// reference against a base URI that itself has a non-empty fragment.
type BaseHasFragmentError struct {
	Base string
	Ref  string
}

func (e *BaseHasFragmentError) Error() string {
	return "cannot resolve " + quote(e.Ref) + " against base " + quote(e.Base) + " which has a fragment"
}

func quote(s string) string {
	return "\"" + s + "\""
}
