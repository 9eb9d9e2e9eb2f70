package validate

import (
	"github.com/scenekit/gltf/schema"
)

// completeDocument runs the conformance-only checks. It assumes nothing about
// the minimal pass having succeeded: every lookup re-checks bounds and skips
// quietly on failure, since the minimal pass already reported those.
func (v *validator) completeDocument(p Path) {
	for i := range v.doc.Buffers {
		v.completeBuffer(p.Field("buffers").Index(i), &v.doc.Buffers[i])
	}
	for i := range v.doc.BufferViews {
		v.completeBufferView(p.Field("bufferViews").Index(i), &v.doc.BufferViews[i])
	}
	for i := range v.doc.Accessors {
		v.completeAccessor(p.Field("accessors").Index(i), &v.doc.Accessors[i])
	}
	for i := range v.doc.Nodes {
		v.completeNode(p.Field("nodes").Index(i), &v.doc.Nodes[i])
	}
	for i := range v.doc.Animations {
		v.completeAnimation(p.Field("animations").Index(i), &v.doc.Animations[i])
	}
	for i := range v.doc.Skins {
		v.completeSkin(p.Field("skins").Index(i), &v.doc.Skins[i])
	}
}

func (v *validator) completeBuffer(p Path, b *schema.Buffer) {
	if b.ByteLength == 0 {
		v.report(p.Field("byteLength"), Missing, "buffer length must be at least 1")
	}
}

func (v *validator) completeBufferView(p Path, view *schema.BufferView) {
	if view.ByteStride == nil {
		return
	}
	stride := *view.ByteStride
	if stride < 4 || stride > 252 || stride%4 != 0 {
		v.report(p.Field("byteStride"), Nonconformant,
			"stride %d must be a multiple of 4 in [4, 252]", stride)
	}
}

func (v *validator) completeAccessor(p Path, a *schema.Accessor) {
	if a.Count == 0 {
		v.report(p.Field("count"), Missing, "accessor count must be at least 1")
	}

	if n := a.Type.Components(); n != 0 {
		if a.Min != nil && len(a.Min) != n {
			v.report(p.Field("min"), Nonconformant, "min has %d values, element has %d components", len(a.Min), n)
		}
		if a.Max != nil && len(a.Max) != n {
			v.report(p.Field("max"), Nonconformant, "max has %d values, element has %d components", len(a.Max), n)
		}
	}

	if a.Sparse != nil && a.Sparse.Count >= a.Count && a.Count > 0 {
		v.report(p.Field("sparse").Field("count"), Nonconformant,
			"sparse count %d must be less than accessor count %d", a.Sparse.Count, a.Count)
	}
}

func (v *validator) completeNode(p Path, n *schema.Node) {
	if n.Matrix != nil {
		if len(n.Matrix) != 16 {
			v.report(p.Field("matrix"), Nonconformant, "matrix has %d values, want 16", len(n.Matrix))
		}
		if n.Translation != nil || n.Rotation != nil || n.Scale != nil {
			v.report(p.Field("matrix"), Nonconformant,
				"matrix must not be combined with translation/rotation/scale")
		}
	}
}

func (v *validator) completeAnimation(p Path, anim *schema.Animation) {
	for i := range anim.Samplers {
		sp := p.Field("samplers").Index(i)
		s := &anim.Samplers[i]

		input := v.doc.GetAccessor(s.Input)
		if input != nil {
			v.completeSamplerInput(sp.Field("input"), s, input)
		}
	}

	for i := range anim.Channels {
		ch := &anim.Channels[i]
		if int(ch.Sampler) >= len(anim.Samplers) || !ch.Target.Path.Valid() {
			continue
		}
		s := &anim.Samplers[ch.Sampler]
		sp := p.Field("samplers").Index(int(ch.Sampler))
		output := v.doc.GetAccessor(s.Output)
		if output == nil {
			continue
		}
		v.completeSamplerOutput(sp.Field("output"), s, output, ch.Target.Path)

		if input := v.doc.GetAccessor(s.Input); input != nil {
			v.completeKeyframeCounts(sp.Field("output"), s, input, output, ch.Target.Path)
		}
	}
}

func (v *validator) completeSamplerInput(p Path, s *schema.AnimationSampler, input *schema.Accessor) {
	if input.Type != schema.TypeScalar || input.ComponentType != schema.ComponentF32 {
		v.report(p, Nonconformant, "keyframe input must be SCALAR/F32, got %s/%s",
			input.Type, input.ComponentType)
	}
	if input.Min == nil || input.Max == nil {
		v.report(p, Missing, "keyframe input requires min and max")
	}
	if s.Interpolation == schema.InterpolationCubicSpline && input.Count < 2 {
		v.report(p, Nonconformant, "CUBICSPLINE requires at least 2 keyframes, got %d", input.Count)
	}
}

// quantizable reports whether a component type is one of the five encodings
// the format allows for rotation and morph-weight output.
func quantizable(c schema.ComponentType) bool {
	switch c {
	case schema.ComponentI8, schema.ComponentU8, schema.ComponentI16, schema.ComponentU16, schema.ComponentF32:
		return true
	}
	return false
}

func (v *validator) completeSamplerOutput(p Path, s *schema.AnimationSampler, output *schema.Accessor, path schema.TargetPath) {
	switch path {
	case schema.PathTranslation, schema.PathScale:
		if output.Type != schema.TypeVec3 || output.ComponentType != schema.ComponentF32 {
			v.report(p, Nonconformant, "%s output must be VEC3/F32, got %s/%s",
				path, output.Type, output.ComponentType)
		}
	case schema.PathRotation:
		if output.Type != schema.TypeVec4 {
			v.report(p, Nonconformant, "rotation output must be VEC4, got %s", output.Type)
		}
		if !quantizable(output.ComponentType) {
			v.report(p, Nonconformant, "rotation output component type %s not allowed",
				output.ComponentType)
		}
	case schema.PathWeights:
		if output.Type != schema.TypeScalar {
			v.report(p, Nonconformant, "weights output must be SCALAR, got %s", output.Type)
		}
		if !quantizable(output.ComponentType) {
			v.report(p, Nonconformant, "weights output component type %s not allowed",
				output.ComponentType)
		}
	}
}

// completeKeyframeCounts checks the coupling between keyframe input and
// output counts. CUBICSPLINE stores in-tangent, value, and out-tangent per
// keyframe; morph weights store one scalar per target per keyframe.
func (v *validator) completeKeyframeCounts(p Path, s *schema.AnimationSampler, input, output *schema.Accessor, path schema.TargetPath) {
	if input.Count == 0 {
		return
	}
	per := uint32(1)
	if s.Interpolation == schema.InterpolationCubicSpline {
		per = 3
	}
	if path == schema.PathWeights {
		if output.Count%(input.Count*per) != 0 {
			v.report(p, Nonconformant,
				"weights output count %d must be a multiple of %d keyframes", output.Count, input.Count*per)
		}
		return
	}
	if output.Count != input.Count*per {
		v.report(p, Nonconformant,
			"output count %d does not match %d keyframes (interpolation %s)",
			output.Count, input.Count, s.Interpolation)
	}
}

func (v *validator) completeSkin(p Path, s *schema.Skin) {
	if len(s.Joints) == 0 {
		v.report(p.Field("joints"), Missing, "skin requires at least one joint")
	}
	if s.InverseBindMatrices == nil {
		return
	}
	ibm := v.doc.GetAccessor(*s.InverseBindMatrices)
	if ibm == nil {
		return
	}
	if ibm.Type != schema.TypeMat4 || ibm.ComponentType != schema.ComponentF32 {
		v.report(p.Field("inverseBindMatrices"), Nonconformant,
			"inverse-bind matrices must be MAT4/F32, got %s/%s", ibm.Type, ibm.ComponentType)
	}
	if int(ibm.Count) < len(s.Joints) {
		v.report(p.Field("inverseBindMatrices"), Nonconformant,
			"accessor holds %d matrices for %d joints", ibm.Count, len(s.Joints))
	}
}
