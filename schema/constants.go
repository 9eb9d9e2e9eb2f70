package schema

// ComponentType is the numeric storage type of one accessor component,
// using the glTF 2.0 enumeration values.
type ComponentType uint32

const (
	ComponentI8  ComponentType = 5120 // BYTE
	ComponentU8  ComponentType = 5121 // UNSIGNED_BYTE
	ComponentI16 ComponentType = 5122 // SHORT
	ComponentU16 ComponentType = 5123 // UNSIGNED_SHORT
	ComponentU32 ComponentType = 5125 // UNSIGNED_INT, indices only
	ComponentF32 ComponentType = 5126 // FLOAT
)

// Size returns the component width in bytes, or 0 for an unrecognized type.
func (c ComponentType) Size() int {
	switch c {
	case ComponentI8, ComponentU8:
		return 1
	case ComponentI16, ComponentU16:
		return 2
	case ComponentU32, ComponentF32:
		return 4
	}
	return 0
}

// Valid reports whether c is one of the glTF 2.0 component types.
func (c ComponentType) Valid() bool {
	return c.Size() != 0
}

func (c ComponentType) String() string {
	switch c {
	case ComponentI8:
		return "I8"
	case ComponentU8:
		return "U8"
	case ComponentI16:
		return "I16"
	case ComponentU16:
		return "U16"
	case ComponentU32:
		return "U32"
	case ComponentF32:
		return "F32"
	}
	return "ComponentType(unknown)"
}

// AccessorType is the element arity of an accessor (scalar, vector, matrix).
type AccessorType string

const (
	TypeScalar AccessorType = "SCALAR"
	TypeVec2   AccessorType = "VEC2"
	TypeVec3   AccessorType = "VEC3"
	TypeVec4   AccessorType = "VEC4"
	TypeMat2   AccessorType = "MAT2"
	TypeMat3   AccessorType = "MAT3"
	TypeMat4   AccessorType = "MAT4"
)

// Components returns the number of components per element, or 0 for an
// unrecognized type.
func (t AccessorType) Components() int {
	switch t {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4, TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	}
	return 0
}

// Valid reports whether t is one of the glTF 2.0 accessor types.
func (t AccessorType) Valid() bool {
	return t.Components() != 0
}

// Interpolation is an animation sampler's keyframe interpolation algorithm.
type Interpolation string

const (
	InterpolationLinear      Interpolation = "LINEAR"
	InterpolationStep        Interpolation = "STEP"
	InterpolationCubicSpline Interpolation = "CUBICSPLINE"
)

// Valid reports whether i is a recognized interpolation mode.
func (i Interpolation) Valid() bool {
	switch i {
	case InterpolationLinear, InterpolationStep, InterpolationCubicSpline:
		return true
	}
	return false
}

// TargetPath names the node property an animation channel drives.
type TargetPath string

const (
	PathTranslation TargetPath = "translation"
	PathRotation    TargetPath = "rotation"
	PathScale       TargetPath = "scale"
	PathWeights     TargetPath = "weights"
)

// Valid reports whether p is a recognized target property.
func (p TargetPath) Valid() bool {
	switch p {
	case PathTranslation, PathRotation, PathScale, PathWeights:
		return true
	}
	return false
}
