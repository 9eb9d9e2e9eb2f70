package gltf

import (
	"github.com/scenekit/gltf/accessor"
	"github.com/scenekit/gltf/errors"
	"github.com/scenekit/gltf/schema"
)

// Skin borrows one skin record from its document.
type Skin struct {
	doc   *Document
	index int
}

// Index returns the skin's position in the document.
func (s Skin) Index() int {
	return s.index
}

// Name returns the optional user-defined name.
func (s Skin) Name() string {
	return s.record().Name
}

func (s Skin) record() *schema.Skin {
	return &s.doc.doc.Skins[s.index]
}

// InverseBindMatrices returns the skin's matrix accessor, or nil when the
// skin has none (each matrix is then the identity, pre-applied).
func (s Skin) InverseBindMatrices() *schema.Accessor {
	record := s.record()
	if record.InverseBindMatrices == nil {
		return nil
	}
	return s.doc.doc.GetAccessor(*record.InverseBindMatrices)
}

// Skeleton returns the skeleton root node, or nil when the skin has none
// (joint transforms then resolve to the scene root).
func (s Skin) Skeleton() *schema.Node {
	record := s.record()
	if record.Skeleton == nil {
		return nil
	}
	return s.doc.doc.GetNode(*record.Skeleton)
}

// Reader constructs a skin reader bound to a resolver.
func (s Skin) Reader(r Resolver) *SkinReader {
	return &SkinReader{skin: s, resolve: r}
}

// SkinReader decodes a skin's matrix data through a Resolver.
type SkinReader struct {
	skin    Skin
	resolve Resolver
}

// IBMState distinguishes why inverse-bind matrices may be absent.
type IBMState int

const (
	// IBMNoAccessor means the skin declares no matrix accessor: identity
	// matrices are implied. This is a valid document state.
	IBMNoAccessor IBMState = iota
	// IBMUnresolved means the accessor exists but the resolver could not
	// supply its buffer bytes.
	IBMUnresolved
	// IBMData means Matrices holds the decoded sequence.
	IBMData
)

// IBMResult is the three-state outcome of reading inverse-bind matrices.
// Matrices is non-nil only when State is IBMData.
type IBMResult struct {
	State    IBMState
	Matrices *accessor.Iter[[4][4]float32]
}

// ReadInverseBindMatrices decodes the skin's 4x4 float matrices. Absence of
// the accessor and a resolver miss are distinct states so callers can tell
// "identity implied" apart from "data unavailable".
func (r *SkinReader) ReadInverseBindMatrices() (IBMResult, error) {
	record := r.skin.record()
	if record.InverseBindMatrices == nil {
		return IBMResult{State: IBMNoAccessor}, nil
	}
	doc := r.skin.doc
	a := doc.doc.GetAccessor(*record.InverseBindMatrices)
	if a == nil {
		return IBMResult{}, errors.OutOfBounds(errors.PhaseRead, nil,
			int(*record.InverseBindMatrices), len(doc.doc.Accessors))
	}
	data := doc.accessorData(a, r.resolve)
	if data == nil {
		return IBMResult{State: IBMUnresolved}, nil
	}
	it, err := accessor.Mat4s(doc.doc, a, data)
	if err != nil {
		return IBMResult{}, err
	}
	return IBMResult{State: IBMData, Matrices: it}, nil
}

// Joints returns a lazy iterator over the skin's joint nodes.
func (r *SkinReader) Joints() *Joints {
	return r.skin.Joints()
}

// Joints returns a lazy iterator over the skin's joint nodes.
func (s Skin) Joints() *Joints {
	return &Joints{doc: s.doc.doc, indices: s.record().Joints}
}

// Joints lazily resolves a skin's joint indices against the node table.
// Validation guarantees the indices resolve; on an unvalidated document an
// out-of-range index stops iteration and is reported by Err.
type Joints struct {
	doc     *schema.Document
	indices []schema.Index
	pos     int
	err     error
}

// Next returns the next joint node. It returns false at the end of the list
// or on the first unresolvable index.
func (j *Joints) Next() (*schema.Node, bool) {
	if j.err != nil || j.pos >= len(j.indices) {
		return nil, false
	}
	idx := j.indices[j.pos]
	node := j.doc.GetNode(idx)
	if node == nil {
		j.err = errors.OutOfBounds(errors.PhaseRead,
			[]string{"joints"}, int(idx), len(j.doc.Nodes))
		return nil, false
	}
	j.pos++
	return node, true
}

// Count returns the number of joint indices in the skin.
func (j *Joints) Count() int {
	return len(j.indices)
}

// Err returns the structural defect that stopped iteration, if any.
func (j *Joints) Err() error {
	return j.err
}
