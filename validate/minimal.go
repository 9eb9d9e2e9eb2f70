package validate

import (
	"fmt"

	"github.com/scenekit/gltf/schema"
)

// Minimal runs the memory-safety pass: everything unchecked decoding could
// trip over. A document that passes can be decoded without reading outside
// any backing buffer view or misinterpreting any enum-dispatched bytes.
func Minimal(doc *schema.Document) Errors {
	v := &validator{doc: doc}
	v.minimalDocument(Root())
	return v.errs
}

// Complete runs the minimal pass followed by the full-conformance pass,
// appending the conformance violations after the safety violations.
func Complete(doc *schema.Document) Errors {
	v := &validator{doc: doc}
	v.minimalDocument(Root())
	v.completeDocument(Root())
	return v.errs
}

type validator struct {
	doc  *schema.Document
	errs Errors
}

func (v *validator) report(p Path, kind Kind, format string, args ...any) {
	v.errs = append(v.errs, Violation{Path: p, Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// checkIndex reports when idx does not resolve within a collection of the
// given length.
func (v *validator) checkIndex(p Path, idx schema.Index, length int) bool {
	if int(idx) >= length {
		v.report(p, IndexOutOfBounds, "index %d out of bounds (length %d)", idx, length)
		return false
	}
	return true
}

func (v *validator) minimalDocument(p Path) {
	for i := range v.doc.BufferViews {
		v.minimalBufferView(p.Field("bufferViews").Index(i), &v.doc.BufferViews[i])
	}
	for i := range v.doc.Accessors {
		v.minimalAccessor(p.Field("accessors").Index(i), &v.doc.Accessors[i])
	}
	for i := range v.doc.Nodes {
		v.minimalNode(p.Field("nodes").Index(i), &v.doc.Nodes[i])
	}
	for i := range v.doc.Scenes {
		v.minimalScene(p.Field("scenes").Index(i), &v.doc.Scenes[i])
	}
	if v.doc.Scene != nil {
		v.checkIndex(p.Field("scene"), *v.doc.Scene, len(v.doc.Scenes))
	}
	for i := range v.doc.Animations {
		v.minimalAnimation(p.Field("animations").Index(i), &v.doc.Animations[i])
	}
	for i := range v.doc.Skins {
		v.minimalSkin(p.Field("skins").Index(i), &v.doc.Skins[i])
	}
}

func (v *validator) minimalBufferView(p Path, view *schema.BufferView) {
	if !v.checkIndex(p.Field("buffer"), view.Buffer, len(v.doc.Buffers)) {
		return
	}
	buffer := &v.doc.Buffers[view.Buffer]
	if uint64(view.ByteOffset)+uint64(view.ByteLength) > uint64(buffer.ByteLength) {
		v.report(p, LengthMismatch,
			"view range [%d, %d) exceeds buffer length %d",
			view.ByteOffset, view.ByteOffset+view.ByteLength, buffer.ByteLength)
	}
}

func (v *validator) minimalAccessor(p Path, a *schema.Accessor) {
	typesOK := true
	if !a.ComponentType.Valid() {
		v.report(p.Field("componentType"), InvalidValue, "unrecognized component type %d", a.ComponentType)
		typesOK = false
	}
	if !a.Type.Valid() {
		v.report(p.Field("type"), InvalidValue, "unrecognized accessor type %q", a.Type)
		typesOK = false
	}

	if a.BufferView != nil {
		if v.checkIndex(p.Field("bufferView"), *a.BufferView, len(v.doc.BufferViews)) && typesOK {
			v.accessorFit(p, a, &v.doc.BufferViews[*a.BufferView])
		}
	}

	if a.Sparse != nil {
		v.minimalSparse(p.Field("sparse"), a, a.Sparse)
	}
}

// accessorFit checks that offset, count, stride, and element size stay
// within the view.
func (v *validator) accessorFit(p Path, a *schema.Accessor, view *schema.BufferView) {
	elemSize := a.ElementSize()
	stride := elemSize
	if view.ByteStride != nil {
		stride = int(*view.ByteStride)
		if stride < elemSize {
			v.report(p, LengthMismatch, "view stride %d smaller than element size %d", stride, elemSize)
			return
		}
	}
	if a.Count == 0 {
		return
	}
	need := uint64(a.ByteOffset) + uint64(a.Count-1)*uint64(stride) + uint64(elemSize)
	if need > uint64(view.ByteLength) {
		v.report(p, LengthMismatch, "accessor needs %d bytes, view has %d", need, view.ByteLength)
	}
}

func (v *validator) minimalSparse(p Path, a *schema.Accessor, s *schema.Sparse) {
	switch s.Indices.ComponentType {
	case schema.ComponentU8, schema.ComponentU16, schema.ComponentU32:
	default:
		v.report(p.Field("indices").Field("componentType"), InvalidValue,
			"sparse indices must be unsigned, got %s", s.Indices.ComponentType)
	}

	if v.checkIndex(p.Field("indices").Field("bufferView"), s.Indices.BufferView, len(v.doc.BufferViews)) {
		if size := s.Indices.ComponentType.Size(); size != 0 {
			view := &v.doc.BufferViews[s.Indices.BufferView]
			need := uint64(s.Indices.ByteOffset) + uint64(s.Count)*uint64(size)
			if need > uint64(view.ByteLength) {
				v.report(p.Field("indices"), LengthMismatch,
					"sparse indices need %d bytes, view has %d", need, view.ByteLength)
			}
		}
	}

	if v.checkIndex(p.Field("values").Field("bufferView"), s.Values.BufferView, len(v.doc.BufferViews)) {
		if elemSize := a.ElementSize(); elemSize != 0 {
			view := &v.doc.BufferViews[s.Values.BufferView]
			need := uint64(s.Values.ByteOffset) + uint64(s.Count)*uint64(elemSize)
			if need > uint64(view.ByteLength) {
				v.report(p.Field("values"), LengthMismatch,
					"sparse values need %d bytes, view has %d", need, view.ByteLength)
			}
		}
	}
}

func (v *validator) minimalNode(p Path, n *schema.Node) {
	for i, child := range n.Children {
		v.checkIndex(p.Field("children").Index(i), child, len(v.doc.Nodes))
	}
	if n.Mesh != nil {
		v.checkIndex(p.Field("mesh"), *n.Mesh, len(v.doc.Meshes))
	}
	if n.Skin != nil {
		v.checkIndex(p.Field("skin"), *n.Skin, len(v.doc.Skins))
	}
}

func (v *validator) minimalScene(p Path, s *schema.Scene) {
	for i, node := range s.Nodes {
		v.checkIndex(p.Field("nodes").Index(i), node, len(v.doc.Nodes))
	}
}

func (v *validator) minimalAnimation(p Path, anim *schema.Animation) {
	for i := range anim.Channels {
		cp := p.Field("channels").Index(i)
		ch := &anim.Channels[i]
		v.checkIndex(cp.Field("sampler"), ch.Sampler, len(anim.Samplers))
		if !ch.Target.Path.Valid() {
			v.report(cp.Field("target").Field("path"), InvalidValue,
				"unrecognized target path %q", ch.Target.Path)
		}
		if ch.Target.Node != nil {
			v.checkIndex(cp.Field("target").Field("node"), *ch.Target.Node, len(v.doc.Nodes))
		}
	}
	for i := range anim.Samplers {
		sp := p.Field("samplers").Index(i)
		s := &anim.Samplers[i]
		v.checkIndex(sp.Field("input"), s.Input, len(v.doc.Accessors))
		v.checkIndex(sp.Field("output"), s.Output, len(v.doc.Accessors))
		if !s.Interpolation.Valid() {
			v.report(sp.Field("interpolation"), InvalidValue,
				"unrecognized interpolation %q", s.Interpolation)
		}
	}
}

func (v *validator) minimalSkin(p Path, s *schema.Skin) {
	if s.InverseBindMatrices != nil {
		v.checkIndex(p.Field("inverseBindMatrices"), *s.InverseBindMatrices, len(v.doc.Accessors))
	}
	if s.Skeleton != nil {
		v.checkIndex(p.Field("skeleton"), *s.Skeleton, len(v.doc.Nodes))
	}
	for i, joint := range s.Joints {
		v.checkIndex(p.Field("joints").Index(i), joint, len(v.doc.Nodes))
	}
}
