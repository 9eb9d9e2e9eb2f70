package accessor

import (
	"github.com/scenekit/gltf/errors"
	"github.com/scenekit/gltf/schema"
)

// Iter is a lazy, restartable sequence of decoded elements of type T.
//
// The zero value is not usable; construct through one of the typed
// constructors in this package. Iteration order is storage order and the
// sequence always yields exactly Count elements.
type Iter[T any] struct {
	data   []byte
	read   func([]byte) T
	stride int
	size   int
	count  int
	pos    int
}

// Next returns the next element. The second return is false once the
// sequence is exhausted.
func (it *Iter[T]) Next() (T, bool) {
	if it.pos >= it.count {
		var zero T
		return zero, false
	}
	off := it.pos * it.stride
	it.pos++
	return it.read(it.data[off : off+it.size]), true
}

// Count returns the total number of elements in the sequence.
func (it *Iter[T]) Count() int {
	return it.count
}

// Reset rewinds the sequence to the first element.
func (it *Iter[T]) Reset() {
	it.pos = 0
}

// Collect materializes the remaining elements. Intended for tests and
// diagnostics; decoding proper should consume lazily via Next.
func (it *Iter[T]) Collect() []T {
	out := make([]T, 0, it.count-it.pos)
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// newIter locates the accessor's byte range inside buf and verifies, once,
// that every element lies within both the buffer view and the supplied
// slice. elemSize is the tightly-packed size of the requested shape.
func newIter[T any](doc *schema.Document, a *schema.Accessor, buf []byte, elemSize int, read func([]byte) T) (*Iter[T], error) {
	if a.BufferView == nil {
		return nil, errors.Unsupported(errors.PhaseDecode, "accessor without bufferView (zero-filled or sparse-only) cannot be decoded")
	}
	view := doc.GetBufferView(*a.BufferView)
	if view == nil {
		return nil, errors.OutOfBounds(errors.PhaseDecode, nil, int(*a.BufferView), len(doc.BufferViews))
	}

	stride := elemSize
	if view.ByteStride != nil {
		stride = int(*view.ByteStride)
		if stride < elemSize {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidStride).
				Detail("stride %d smaller than element size %d", stride, elemSize).
				Build()
		}
	}

	count := int(a.Count)
	span := 0
	if count > 0 {
		span = (count-1)*stride + elemSize
	}

	// Elements must stay inside the view's declared range and inside the
	// bytes the resolver actually produced.
	if int(a.ByteOffset)+span > int(view.ByteLength) {
		return nil, errors.ShortBuffer(errors.PhaseDecode, nil, int(a.ByteOffset)+span, int(view.ByteLength))
	}
	base := int(view.ByteOffset) + int(a.ByteOffset)
	if base+span > len(buf) {
		return nil, errors.ShortBuffer(errors.PhaseDecode, nil, base+span, len(buf))
	}

	return &Iter[T]{
		data:   buf[base : base+span],
		read:   read,
		stride: stride,
		size:   elemSize,
		count:  count,
	}, nil
}

// checkShape verifies the accessor's declared component and element types
// against what the caller requested.
func checkShape(a *schema.Accessor, ctype schema.ComponentType, etype schema.AccessorType) error {
	if a.Type != etype {
		return errors.New(errors.PhaseDecode, errors.KindComponentMismatch).
			Detail("accessor type %s cannot decode as %s", a.Type, etype).
			Build()
	}
	if a.ComponentType != ctype {
		return errors.ComponentMismatch(errors.PhaseDecode, nil,
			a.ComponentType.String(), ctype.String())
	}
	return nil
}
