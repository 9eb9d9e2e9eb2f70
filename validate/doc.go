// Package validate implements the two-phase validation traversal over a
// parsed document.
//
// The minimal pass checks only what safe decoding requires: every index
// reference resolves in bounds, every accessor's offset/count/stride
// combination stays inside its buffer view, and enum-valued fields hold
// recognized values. The complete pass re-runs the minimal pass and then
// checks full glTF 2.0 conformance on top: required value ranges, element
// shapes for animation and skinning accessors, keyframe count coupling, and
// similar legal-but-required constraints.
//
// Both passes are exhaustive rather than fail-fast: every violation found is
// collected with the structural path of the offending field, and running the
// same pass twice over an unmodified document yields an identical list.
// Paths render in the documented textual form, for example
// "animations[0].samplers[2].input", and downstream tooling may rely on that
// rendering.
package validate
