package accessor

import (
	"encoding/binary"
	"math"

	"github.com/scenekit/gltf/errors"
	"github.com/scenekit/gltf/schema"
)

// Raw component readers. All glTF binary data is little-endian.

func i8At(b []byte) int8   { return int8(b[0]) }
func u8At(b []byte) uint8  { return b[0] }
func i16At(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }
func u16At(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}
func u32At(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
func f32At(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Normalization per the glTF 2.0 component conversion rules: unsigned types
// rescale to [0,1], signed types to [-1,1] using full-range division.

// NormalizeI8 rescales a signed byte to [-1,1].
func NormalizeI8(v int8) float32 { return max(float32(v)/127, -1) }

// NormalizeU8 rescales an unsigned byte to [0,1].
func NormalizeU8(v uint8) float32 { return float32(v) / 255 }

// NormalizeI16 rescales a signed short to [-1,1].
func NormalizeI16(v int16) float32 { return max(float32(v)/32767, -1) }

// NormalizeU16 rescales an unsigned short to [0,1].
func NormalizeU16(v uint16) float32 { return float32(v) / 65535 }

func vec3f32At(b []byte) [3]float32 {
	return [3]float32{f32At(b), f32At(b[4:]), f32At(b[8:])}
}

func vec4At[T any](read func([]byte) T, size int) func([]byte) [4]T {
	return func(b []byte) [4]T {
		return [4]T{read(b), read(b[size:]), read(b[2*size:]), read(b[3*size:])}
	}
}

// mat4f32At reads 16 consecutive floats in glTF storage order
// (column-major): m[c][r] is column c, row r.
func mat4f32At(b []byte) [4][4]float32 {
	var m [4][4]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c][r] = f32At(b[(c*4+r)*4:])
		}
	}
	return m
}

// Scalars decodes a SCALAR/F32 accessor as float32 values (keyframe times).
func Scalars(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[float32], error) {
	if err := checkShape(a, schema.ComponentF32, schema.TypeScalar); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 4, f32At)
}

// ScalarsI8 decodes a SCALAR/I8 accessor.
func ScalarsI8(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[int8], error) {
	if err := checkShape(a, schema.ComponentI8, schema.TypeScalar); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 1, i8At)
}

// ScalarsU8 decodes a SCALAR/U8 accessor.
func ScalarsU8(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[uint8], error) {
	if err := checkShape(a, schema.ComponentU8, schema.TypeScalar); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 1, u8At)
}

// ScalarsI16 decodes a SCALAR/I16 accessor.
func ScalarsI16(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[int16], error) {
	if err := checkShape(a, schema.ComponentI16, schema.TypeScalar); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 2, i16At)
}

// ScalarsU16 decodes a SCALAR/U16 accessor.
func ScalarsU16(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[uint16], error) {
	if err := checkShape(a, schema.ComponentU16, schema.TypeScalar); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 2, u16At)
}

// ScalarsU32 decodes a SCALAR/U32 accessor (index data).
func ScalarsU32(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[uint32], error) {
	if err := checkShape(a, schema.ComponentU32, schema.TypeScalar); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 4, u32At)
}

// Vec3s decodes a VEC3/F32 accessor (translations, scales).
func Vec3s(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[3]float32], error) {
	if err := checkShape(a, schema.ComponentF32, schema.TypeVec3); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 12, vec3f32At)
}

// Vec4sI8 decodes a VEC4/I8 accessor.
func Vec4sI8(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[4]int8], error) {
	if err := checkShape(a, schema.ComponentI8, schema.TypeVec4); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 4, vec4At(i8At, 1))
}

// Vec4sU8 decodes a VEC4/U8 accessor.
func Vec4sU8(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[4]uint8], error) {
	if err := checkShape(a, schema.ComponentU8, schema.TypeVec4); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 4, vec4At(u8At, 1))
}

// Vec4sI16 decodes a VEC4/I16 accessor.
func Vec4sI16(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[4]int16], error) {
	if err := checkShape(a, schema.ComponentI16, schema.TypeVec4); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 8, vec4At(i16At, 2))
}

// Vec4sU16 decodes a VEC4/U16 accessor.
func Vec4sU16(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[4]uint16], error) {
	if err := checkShape(a, schema.ComponentU16, schema.TypeVec4); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 8, vec4At(u16At, 2))
}

// Vec4s decodes a VEC4/F32 accessor.
func Vec4s(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[4]float32], error) {
	if err := checkShape(a, schema.ComponentF32, schema.TypeVec4); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 16, vec4At(f32At, 4))
}

// Mat4s decodes a MAT4/F32 accessor (inverse-bind matrices). Matrices only
// ever decode as 32-bit float.
func Mat4s(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[[4][4]float32], error) {
	if err := checkShape(a, schema.ComponentF32, schema.TypeMat4); err != nil {
		return nil, err
	}
	return newIter(doc, a, buf, 64, mat4f32At)
}

// Floats decodes any SCALAR accessor as float32, honoring the accessor's
// normalized flag: normalized integer components rescale to [0,1] or [-1,1],
// non-normalized integers convert by value.
func Floats(doc *schema.Document, a *schema.Accessor, buf []byte) (*Iter[float32], error) {
	if a.Type != schema.TypeScalar {
		return nil, errors.New(errors.PhaseDecode, errors.KindComponentMismatch).
			Detail("accessor type %s cannot decode as %s", a.Type, schema.TypeScalar).
			Build()
	}

	var read func([]byte) float32
	switch a.ComponentType {
	case schema.ComponentI8:
		if a.Normalized {
			read = func(b []byte) float32 { return NormalizeI8(i8At(b)) }
		} else {
			read = func(b []byte) float32 { return float32(i8At(b)) }
		}
	case schema.ComponentU8:
		if a.Normalized {
			read = func(b []byte) float32 { return NormalizeU8(u8At(b)) }
		} else {
			read = func(b []byte) float32 { return float32(u8At(b)) }
		}
	case schema.ComponentI16:
		if a.Normalized {
			read = func(b []byte) float32 { return NormalizeI16(i16At(b)) }
		} else {
			read = func(b []byte) float32 { return float32(i16At(b)) }
		}
	case schema.ComponentU16:
		if a.Normalized {
			read = func(b []byte) float32 { return NormalizeU16(u16At(b)) }
		} else {
			read = func(b []byte) float32 { return float32(u16At(b)) }
		}
	case schema.ComponentU32:
		read = func(b []byte) float32 { return float32(u32At(b)) }
	case schema.ComponentF32:
		read = f32At
	default:
		return nil, errors.InvalidEnum(errors.PhaseDecode, nil, uint32(a.ComponentType))
	}

	return newIter(doc, a, buf, a.ComponentType.Size(), read)
}
