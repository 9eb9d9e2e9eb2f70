// Package gltf provides the decoding and validation core of a glTF 2.0
// reader: parsing a document into a typed record tree, validating its
// cross-references and value ranges, and lazily decoding referenced byte
// ranges into strongly-typed sequences.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	gltf/       Root package: entry points, buffer resolvers, channel and
//	            skin readers
//	├── schema/    Parsed JSON document model (records, enums, indices)
//	├── accessor/  Typed lazy decoding of accessor byte ranges
//	├── validate/  Two-phase validation with exhaustive error collection
//	├── glb/       GLB binary container parsing
//	└── errors/    Structured error types for debugging
//
// # Quick Start
//
// Load a document, validate it, and read an animation channel:
//
//	asset, err := gltf.Open("scene.gltf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := asset.ValidateMinimally()
//	if err != nil {
//	    log.Fatal(err) // err lists every violation with its path
//	}
//
//	resolver := doc.Resolver()
//	for _, anim := range doc.Animations() {
//	    for _, ch := range anim.Channels() {
//	        reader := ch.Reader(resolver)
//	        times, err := reader.ReadInputs()
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        if times == nil {
//	            continue // buffer bytes unavailable; skip this channel
//	        }
//	        for t, ok := times.Next(); ok; t, ok = times.Next() {
//	            fmt.Println(t)
//	        }
//	    }
//	}
//
// # Validation Model
//
// Validation is two-phase. ValidateMinimally checks only what safe decoding
// requires (index bounds, byte-range fit, enum values); ValidateCompletely
// adds full glTF 2.0 conformance. Both collect every violation instead of
// failing fast, and SkipValidation is available for callers who accept the
// risk of decoding an unchecked document.
//
// # Buffer Resolution
//
// Readers never perform I/O. They ask a Resolver for the bytes behind a
// buffer record; a nil result is a miss, surfaced to callers as an absent
// sequence rather than an error. The Resolver returned by Document.Resolver
// serves the embedded GLB chunk, base64 data URIs, and files relative to the
// document's directory.
package gltf
