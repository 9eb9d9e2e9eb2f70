package gltf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scenekit/gltf/glb"
	"github.com/scenekit/gltf/schema"
	"github.com/scenekit/gltf/validate"
)

// glbMagic is the little-endian "glTF" prefix distinguishing a binary
// container from a JSON document.
var glbMagic = []byte{0x67, 0x6C, 0x54, 0x46}

// Unvalidated is a parsed document whose cross-references have not been
// checked yet. Decoding it directly is unsafe; call ValidateMinimally or
// ValidateCompletely first, or accept the risk with SkipValidation.
type Unvalidated struct {
	doc *schema.Document
	bin []byte
	dir string
}

// Parse parses a glTF JSON document.
func Parse(data []byte) (*Unvalidated, error) {
	doc, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Unvalidated{doc: doc}, nil
}

// ParseBinary parses a GLB container and the JSON document inside it. The
// BIN chunk, when present, backs the document's URI-less buffer.
func ParseBinary(data []byte) (*Unvalidated, error) {
	b, err := glb.Decode(data)
	if err != nil {
		return nil, err
	}
	doc, err := schema.Parse(b.JSON)
	if err != nil {
		return nil, err
	}
	return &Unvalidated{doc: doc, bin: b.BIN}, nil
}

// Open reads a document from disk, dispatching on the GLB magic prefix. The
// file's directory becomes the base for resolving relative buffer URIs.
func Open(path string) (*Unvalidated, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var u *Unvalidated
	if bytes.HasPrefix(data, glbMagic) {
		u, err = ParseBinary(data)
	} else {
		u, err = Parse(data)
	}
	if err != nil {
		return nil, err
	}
	u.dir = filepath.Dir(path)
	return u, nil
}

// JSON exposes the parsed record tree for inspection before validation.
func (u *Unvalidated) JSON() *schema.Document {
	return u.doc
}

// ValidateMinimally checks the invariants required for safe decoding. On
// failure it returns the complete violation list as the error; the document
// is never partially validated.
func (u *Unvalidated) ValidateMinimally() (*Document, error) {
	if errs := validate.Minimal(u.doc); len(errs) != 0 {
		return nil, errs
	}
	return u.SkipValidation(), nil
}

// ValidateCompletely checks full glTF 2.0 conformance: everything
// ValidateMinimally checks plus the specification's non-safety constraints.
func (u *Unvalidated) ValidateCompletely() (*Document, error) {
	if errs := validate.Complete(u.doc); len(errs) != 0 {
		return nil, errs
	}
	return u.SkipValidation(), nil
}

// SkipValidation returns the document without any checking. Malformed
// documents may then surface as decode-time errors or nonsensical values;
// the caller owns that risk.
func (u *Unvalidated) SkipValidation() *Document {
	return &Document{doc: u.doc, bin: u.bin, dir: u.dir}
}

// Document is a validated (or deliberately unvalidated) glTF asset. All
// record storage is owned here and borrowed by readers; nothing is mutated
// after construction.
type Document struct {
	doc *schema.Document
	bin []byte
	dir string
}

// Schema returns the underlying record tree.
func (d *Document) Schema() *schema.Document {
	return d.doc
}

// Binary returns the embedded GLB BIN chunk, or nil for JSON documents.
func (d *Document) Binary() []byte {
	return d.bin
}

// Animations returns a wrapper for every animation in the document.
func (d *Document) Animations() []Animation {
	out := make([]Animation, len(d.doc.Animations))
	for i := range out {
		out[i] = Animation{doc: d, index: i}
	}
	return out
}

// Skins returns a wrapper for every skin in the document.
func (d *Document) Skins() []Skin {
	out := make([]Skin, len(d.doc.Skins))
	for i := range out {
		out[i] = Skin{doc: d, index: i}
	}
	return out
}
