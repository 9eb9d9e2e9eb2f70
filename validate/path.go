package validate

import "strconv"

// Path identifies a location in the document tree. It renders as a
// dot-delimited structural pointer with bracketed array indices, for example
// "animations[0].samplers[2].input". The rendering is stable; tooling may
// parse it.
//
// Path is an immutable value: Field and Index return extended copies, so a
// path captured for a violation is unaffected by further traversal.
type Path struct {
	s string
}

// Root returns the empty path addressing the document itself.
func Root() Path {
	return Path{}
}

// Field returns p extended with an object member name.
func (p Path) Field(name string) Path {
	if p.s == "" {
		return Path{s: name}
	}
	return Path{s: p.s + "." + name}
}

// Index returns p extended with an array index.
func (p Path) Index(i int) Path {
	return Path{s: p.s + "[" + strconv.Itoa(i) + "]"}
}

// String returns the rendered path. The root path renders as "(root)".
func (p Path) String() string {
	if p.s == "" {
		return "(root)"
	}
	return p.s
}
