package schema

import (
	stderrors "errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/scenekit/gltf/errors"
)

// Parsing errors returned by Parse.
var (
	ErrEmptyDocument = stderrors.New("empty document")
	ErrMissingAsset  = stderrors.New("missing required asset.version")
	ErrMajorVersion  = stderrors.New("unsupported glTF major version")
)

// Parse unmarshals a glTF JSON document.
//
// Only the shape of the JSON is checked here: the asset version must be
// present and name a 2.x document. Cross-references, value ranges, and enum
// values are left to the validate package so that every defect can be
// reported at once.
func Parse(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("malformed JSON").
			Cause(err).
			Build()
	}

	if doc.Asset.Version == "" {
		return nil, ErrMissingAsset
	}
	if doc.Asset.Version[0] != '2' {
		return nil, fmt.Errorf("%w: asset.version %q", ErrMajorVersion, doc.Asset.Version)
	}

	applyDefaults(doc)
	return doc, nil
}

// applyDefaults fills in the schema-defined default values that JSON absence
// implies, so the rest of the library never re-derives them.
func applyDefaults(doc *Document) {
	for ai := range doc.Animations {
		anim := &doc.Animations[ai]
		for si := range anim.Samplers {
			if anim.Samplers[si].Interpolation == "" {
				anim.Samplers[si].Interpolation = InterpolationLinear
			}
		}
	}
}
