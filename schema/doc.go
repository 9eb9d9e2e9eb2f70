// Package schema defines the parsed glTF 2.0 document model.
//
// The types here mirror the JSON structure of a glTF asset: flat top-level
// collections (buffers, bufferViews, accessors, nodes, meshes, scenes,
// animations, skins) whose records reference each other by integer index.
// Parse unmarshals a JSON document into this model without validating
// cross-references; the validate package checks those separately.
//
// All records are plain data. Enum-valued fields keep whatever value the
// document carried so that validation can report unrecognized values instead
// of unmarshalling rejecting them.
package schema
