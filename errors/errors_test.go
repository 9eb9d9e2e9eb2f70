package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindOutOfBounds,
				Path:   []string{"animations", "0", "samplers"},
				Detail: "index 4 out of bounds (length 2)",
			},
			contains: []string{"[validate]", "out_of_bounds", "animations.0.samplers", "index 4"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindShortBuffer,
			},
			contains: []string{"[decode]", "short_buffer"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindInvalidData,
				Detail: "bad base64 payload",
				Cause:  errors.New("illegal byte"),
			},
			contains: []string{"[resolve]", "invalid_data", "bad base64 payload", "caused by", "illegal byte"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(error(err)), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindComponentMismatch,
		Path:  []string{"accessors", "1"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindComponentMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRead, Kind: KindComponentMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindShortBuffer}) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseDecode, KindShortBuffer).
		Path("skins", "0", "inverseBindMatrices").
		Value(12).
		Cause(cause).
		Detail("need %d bytes, have %d", 64, 12).
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindShortBuffer {
		t.Errorf("builder lost phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if got, want := err.Detail, "need 64 bytes, have 12"; got != want {
		t.Errorf("Detail = %q, want %q", got, want)
	}
	if err.Value != 12 {
		t.Errorf("Value = %v, want 12", err.Value)
	}
	if !errors.Is(err, cause) {
		t.Error("built error does not wrap cause")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	path := []string{"nodes", "3"}

	oob := OutOfBounds(PhaseValidate, path, 9, 4)
	if oob.Kind != KindOutOfBounds || !strings.Contains(oob.Detail, "index 9") {
		t.Errorf("OutOfBounds = %v", oob)
	}

	short := ShortBuffer(PhaseDecode, path, 100, 3)
	if short.Kind != KindShortBuffer || !strings.Contains(short.Detail, "have 3") {
		t.Errorf("ShortBuffer = %v", short)
	}

	cm := ComponentMismatch(PhaseRead, path, "U32", "quaternion")
	if cm.Kind != KindComponentMismatch || !strings.Contains(cm.Detail, "U32") {
		t.Errorf("ComponentMismatch = %v", cm)
	}

	ie := InvalidEnum(PhaseValidate, path, "TRIANGLE_SOUP")
	if ie.Kind != KindInvalidEnum || !strings.Contains(ie.Detail, "TRIANGLE_SOUP") {
		t.Errorf("InvalidEnum = %v", ie)
	}

	fm := FieldMissing(PhaseValidate, path, "componentType")
	if fm.Kind != KindFieldMissing || !strings.Contains(fm.Detail, "componentType") {
		t.Errorf("FieldMissing = %v", fm)
	}
}
