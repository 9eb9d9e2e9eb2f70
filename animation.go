package gltf

import (
	"github.com/scenekit/gltf/accessor"
	"github.com/scenekit/gltf/errors"
	"github.com/scenekit/gltf/schema"
)

// Animation borrows one animation record from its document.
type Animation struct {
	doc   *Document
	index int
}

// Index returns the animation's position in the document.
func (a Animation) Index() int {
	return a.index
}

// Name returns the optional user-defined name.
func (a Animation) Name() string {
	return a.doc.doc.Animations[a.index].Name
}

// Channels returns a wrapper for every channel of the animation.
func (a Animation) Channels() []Channel {
	record := &a.doc.doc.Animations[a.index]
	out := make([]Channel, len(record.Channels))
	for i := range out {
		out[i] = Channel{anim: a, index: i}
	}
	return out
}

// Channel pairs a sampler with the node property it drives.
type Channel struct {
	anim  Animation
	index int
}

// Target returns the channel's (node, property) target record.
func (c Channel) Target() schema.Target {
	return c.record().Target
}

// Sampler returns the channel's sampler record, or nil when the sampler
// index does not resolve (possible only on unvalidated documents).
func (c Channel) Sampler() *schema.AnimationSampler {
	anim := &c.anim.doc.doc.Animations[c.anim.index]
	s := c.record().Sampler
	if int(s) >= len(anim.Samplers) {
		return nil
	}
	return &anim.Samplers[s]
}

func (c Channel) record() *schema.Channel {
	return &c.anim.doc.doc.Animations[c.anim.index].Channels[c.index]
}

// Reader constructs a channel reader bound to a resolver.
func (c Channel) Reader(r Resolver) *ChannelReader {
	return &ChannelReader{channel: c, resolve: r}
}

// ChannelReader decodes a channel's keyframe data through a Resolver.
//
// A resolver miss is not an error: ReadInputs and ReadOutputs return an
// absent result and the caller is expected to skip the channel. Errors are
// reserved for structural defects, which validated documents do not exhibit.
type ChannelReader struct {
	channel Channel
	resolve Resolver
}

// accessorData fetches the bytes backing an accessor, or nil on a miss.
func (d *Document) accessorData(a *schema.Accessor, resolve Resolver) []byte {
	if a.BufferView == nil {
		return nil
	}
	view := d.doc.GetBufferView(*a.BufferView)
	if view == nil {
		return nil
	}
	return resolve.Resolve(view.Buffer)
}

// ReadInputs decodes the channel's keyframe times. The iterator is nil when
// the backing buffer cannot be resolved.
func (r *ChannelReader) ReadInputs() (*accessor.Iter[float32], error) {
	doc := r.channel.anim.doc
	s := r.channel.Sampler()
	if s == nil {
		return nil, errors.OutOfBounds(errors.PhaseRead, nil,
			int(r.channel.record().Sampler), len(doc.doc.Animations[r.channel.anim.index].Samplers))
	}
	input := doc.doc.GetAccessor(s.Input)
	if input == nil {
		return nil, errors.OutOfBounds(errors.PhaseRead, nil, int(s.Input), len(doc.doc.Accessors))
	}
	data := doc.accessorData(input, r.resolve)
	if data == nil {
		return nil, nil
	}
	return accessor.Scalars(doc.doc, input, data)
}

// Outputs is the tagged result of decoding a channel's output accessor.
// Exactly one field is set, selected by Path: Translations and Scales are
// always vec3/F32; Rotations and Weights are themselves tagged over the five
// component encodings the format allows.
type Outputs struct {
	Path         schema.TargetPath
	Translations *accessor.Iter[[3]float32]
	Scales       *accessor.Iter[[3]float32]
	Rotations    *Rotations
	Weights      *MorphWeights
}

// ReadOutputs decodes the channel's output values. The result is nil when
// the backing buffer cannot be resolved. An output accessor whose component
// type is not legal for the target property is reported as an explicit
// error, never a panic.
func (r *ChannelReader) ReadOutputs() (*Outputs, error) {
	doc := r.channel.anim.doc
	s := r.channel.Sampler()
	if s == nil {
		return nil, errors.OutOfBounds(errors.PhaseRead, nil,
			int(r.channel.record().Sampler), len(doc.doc.Animations[r.channel.anim.index].Samplers))
	}
	output := doc.doc.GetAccessor(s.Output)
	if output == nil {
		return nil, errors.OutOfBounds(errors.PhaseRead, nil, int(s.Output), len(doc.doc.Accessors))
	}
	data := doc.accessorData(output, r.resolve)
	if data == nil {
		return nil, nil
	}

	path := r.channel.Target().Path
	out := &Outputs{Path: path}
	var err error
	switch path {
	case schema.PathTranslation:
		out.Translations, err = accessor.Vec3s(doc.doc, output, data)
	case schema.PathScale:
		out.Scales, err = accessor.Vec3s(doc.doc, output, data)
	case schema.PathRotation:
		out.Rotations, err = readRotations(doc.doc, output, data)
	case schema.PathWeights:
		out.Weights, err = readMorphWeights(doc.doc, output, data)
	default:
		return nil, errors.InvalidEnum(errors.PhaseRead, nil, string(path))
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Rotations is a quaternion sequence tagged by component encoding. Exactly
// one field is set, matching the output accessor's declared component type.
type Rotations struct {
	I8  *accessor.Iter[[4]int8]
	U8  *accessor.Iter[[4]uint8]
	I16 *accessor.Iter[[4]int16]
	U16 *accessor.Iter[[4]uint16]
	F32 *accessor.Iter[[4]float32]
}

func readRotations(doc *schema.Document, a *schema.Accessor, data []byte) (*Rotations, error) {
	r := &Rotations{}
	var err error
	switch a.ComponentType {
	case schema.ComponentI8:
		r.I8, err = accessor.Vec4sI8(doc, a, data)
	case schema.ComponentU8:
		r.U8, err = accessor.Vec4sU8(doc, a, data)
	case schema.ComponentI16:
		r.I16, err = accessor.Vec4sI16(doc, a, data)
	case schema.ComponentU16:
		r.U16, err = accessor.Vec4sU16(doc, a, data)
	case schema.ComponentF32:
		r.F32, err = accessor.Vec4s(doc, a, data)
	default:
		// The format only allows the five encodings above for rotation.
		return nil, errors.ComponentMismatch(errors.PhaseRead, nil,
			a.ComponentType.String(), "rotation quaternion")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ComponentType returns the encoding of the populated variant.
func (r *Rotations) ComponentType() schema.ComponentType {
	switch {
	case r.I8 != nil:
		return schema.ComponentI8
	case r.U8 != nil:
		return schema.ComponentU8
	case r.I16 != nil:
		return schema.ComponentI16
	case r.U16 != nil:
		return schema.ComponentU16
	default:
		return schema.ComponentF32
	}
}

// NextF32 returns the next quaternion converted to float32, applying the
// format's normalization rules to integer encodings.
func (r *Rotations) NextF32() ([4]float32, bool) {
	switch {
	case r.I8 != nil:
		if q, ok := r.I8.Next(); ok {
			return [4]float32{
				accessor.NormalizeI8(q[0]), accessor.NormalizeI8(q[1]),
				accessor.NormalizeI8(q[2]), accessor.NormalizeI8(q[3]),
			}, true
		}
	case r.U8 != nil:
		if q, ok := r.U8.Next(); ok {
			return [4]float32{
				accessor.NormalizeU8(q[0]), accessor.NormalizeU8(q[1]),
				accessor.NormalizeU8(q[2]), accessor.NormalizeU8(q[3]),
			}, true
		}
	case r.I16 != nil:
		if q, ok := r.I16.Next(); ok {
			return [4]float32{
				accessor.NormalizeI16(q[0]), accessor.NormalizeI16(q[1]),
				accessor.NormalizeI16(q[2]), accessor.NormalizeI16(q[3]),
			}, true
		}
	case r.U16 != nil:
		if q, ok := r.U16.Next(); ok {
			return [4]float32{
				accessor.NormalizeU16(q[0]), accessor.NormalizeU16(q[1]),
				accessor.NormalizeU16(q[2]), accessor.NormalizeU16(q[3]),
			}, true
		}
	case r.F32 != nil:
		if q, ok := r.F32.Next(); ok {
			return q, true
		}
	}
	return [4]float32{}, false
}

// MorphWeights is a scalar weight sequence tagged by component encoding.
// Exactly one field is set.
type MorphWeights struct {
	I8  *accessor.Iter[int8]
	U8  *accessor.Iter[uint8]
	I16 *accessor.Iter[int16]
	U16 *accessor.Iter[uint16]
	F32 *accessor.Iter[float32]
}

func readMorphWeights(doc *schema.Document, a *schema.Accessor, data []byte) (*MorphWeights, error) {
	w := &MorphWeights{}
	var err error
	switch a.ComponentType {
	case schema.ComponentI8:
		w.I8, err = accessor.ScalarsI8(doc, a, data)
	case schema.ComponentU8:
		w.U8, err = accessor.ScalarsU8(doc, a, data)
	case schema.ComponentI16:
		w.I16, err = accessor.ScalarsI16(doc, a, data)
	case schema.ComponentU16:
		w.U16, err = accessor.ScalarsU16(doc, a, data)
	case schema.ComponentF32:
		w.F32, err = accessor.Scalars(doc, a, data)
	default:
		return nil, errors.ComponentMismatch(errors.PhaseRead, nil,
			a.ComponentType.String(), "morph target weights")
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ComponentType returns the encoding of the populated variant.
func (w *MorphWeights) ComponentType() schema.ComponentType {
	switch {
	case w.I8 != nil:
		return schema.ComponentI8
	case w.U8 != nil:
		return schema.ComponentU8
	case w.I16 != nil:
		return schema.ComponentI16
	case w.U16 != nil:
		return schema.ComponentU16
	default:
		return schema.ComponentF32
	}
}

// NextF32 returns the next weight converted to float32, applying the
// format's normalization rules to integer encodings.
func (w *MorphWeights) NextF32() (float32, bool) {
	switch {
	case w.I8 != nil:
		if v, ok := w.I8.Next(); ok {
			return accessor.NormalizeI8(v), true
		}
	case w.U8 != nil:
		if v, ok := w.U8.Next(); ok {
			return accessor.NormalizeU8(v), true
		}
	case w.I16 != nil:
		if v, ok := w.I16.Next(); ok {
			return accessor.NormalizeI16(v), true
		}
	case w.U16 != nil:
		if v, ok := w.U16.Next(); ok {
			return accessor.NormalizeU16(v), true
		}
	case w.F32 != nil:
		if v, ok := w.F32.Next(); ok {
			return v, true
		}
	}
	return 0, false
}
