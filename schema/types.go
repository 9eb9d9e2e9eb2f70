package schema

// Index references a record in one of the document's top-level collections.
// Which collection is implied by the field holding the index. Optional
// references are modeled as *Index with nil meaning absent.
type Index uint32

// Int returns the index as an int for slice addressing.
func (i Index) Int() int { return int(i) }

// Document is the root of a parsed glTF asset.
type Document struct {
	Asset       Asset        `json:"asset"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Scene       *Index       `json:"scene,omitempty"`
	Animations  []Animation  `json:"animations,omitempty"`
	Skins       []Skin       `json:"skins,omitempty"`
}

// Asset holds the format version metadata required of every document.
type Asset struct {
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
	Generator  string `json:"generator,omitempty"`
	Copyright  string `json:"copyright,omitempty"`
}

// Buffer is an opaque byte source. The bytes themselves live behind a
// Resolver; the document only records length and location.
type Buffer struct {
	ByteLength uint32 `json:"byteLength"`
	URI        string `json:"uri,omitempty"`
	Name       string `json:"name,omitempty"`
}

// BufferView is a contiguous byte range within a buffer, optionally strided
// for interleaved vertex data.
type BufferView struct {
	Buffer     Index   `json:"buffer"`
	ByteOffset uint32  `json:"byteOffset,omitempty"`
	ByteLength uint32  `json:"byteLength"`
	ByteStride *uint32 `json:"byteStride,omitempty"`
	Target     *uint32 `json:"target,omitempty"`
	Name       string  `json:"name,omitempty"`
}

// Accessor describes how to interpret a byte range as a typed array.
type Accessor struct {
	BufferView    *Index        `json:"bufferView,omitempty"`
	ByteOffset    uint32        `json:"byteOffset,omitempty"`
	ComponentType ComponentType `json:"componentType"`
	Normalized    bool          `json:"normalized,omitempty"`
	Count         uint32        `json:"count"`
	Type          AccessorType  `json:"type"`
	Min           []float64     `json:"min,omitempty"`
	Max           []float64     `json:"max,omitempty"`
	Sparse        *Sparse       `json:"sparse,omitempty"`
	Name          string        `json:"name,omitempty"`
}

// ElementSize returns the tightly-packed byte size of one element, or 0 when
// the component or accessor type is unrecognized.
func (a *Accessor) ElementSize() int {
	return a.ComponentType.Size() * a.Type.Components()
}

// Sparse substitutes a subset of an accessor's elements with values stored
// elsewhere.
type Sparse struct {
	Count   uint32        `json:"count"`
	Indices SparseIndices `json:"indices"`
	Values  SparseValues  `json:"values"`
}

// SparseIndices locates the element indices to substitute.
type SparseIndices struct {
	BufferView    Index         `json:"bufferView"`
	ByteOffset    uint32        `json:"byteOffset,omitempty"`
	ComponentType ComponentType `json:"componentType"`
}

// SparseValues locates the substituted element values.
type SparseValues struct {
	BufferView Index  `json:"bufferView"`
	ByteOffset uint32 `json:"byteOffset,omitempty"`
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name        string      `json:"name,omitempty"`
	Children    []Index     `json:"children,omitempty"`
	Mesh        *Index      `json:"mesh,omitempty"`
	Skin        *Index      `json:"skin,omitempty"`
	Matrix      []float64   `json:"matrix,omitempty"`
	Translation *[3]float64 `json:"translation,omitempty"`
	Rotation    *[4]float64 `json:"rotation,omitempty"`
	Scale       *[3]float64 `json:"scale,omitempty"`
	Weights     []float64   `json:"weights,omitempty"`
}

// Mesh is kept minimal: only what node references and morph-target weight
// validation need.
type Mesh struct {
	Name    string    `json:"name,omitempty"`
	Weights []float64 `json:"weights,omitempty"`
}

// Scene lists the root nodes of one displayable scene.
type Scene struct {
	Name  string  `json:"name,omitempty"`
	Nodes []Index `json:"nodes,omitempty"`
}

// Animation owns an ordered list of channels and the samplers they share.
type Animation struct {
	Name     string             `json:"name,omitempty"`
	Channels []Channel          `json:"channels"`
	Samplers []AnimationSampler `json:"samplers"`
}

// Channel pairs a sampler with the node property it drives.
type Channel struct {
	Sampler Index  `json:"sampler"`
	Target  Target `json:"target"`
}

// Target is the (node, property) pair an animation channel targets.
type Target struct {
	Node *Index     `json:"node,omitempty"`
	Path TargetPath `json:"path"`
}

// AnimationSampler pairs input (time) and output (value) accessors with an
// interpolation algorithm.
type AnimationSampler struct {
	Input         Index         `json:"input"`
	Output        Index         `json:"output"`
	Interpolation Interpolation `json:"interpolation,omitempty"`
}

// Skin defines joints and matrices for vertex skinning.
type Skin struct {
	Name                string  `json:"name,omitempty"`
	InverseBindMatrices *Index  `json:"inverseBindMatrices,omitempty"`
	Skeleton            *Index  `json:"skeleton,omitempty"`
	Joints              []Index `json:"joints"`
}

// Lookup helpers. Each returns nil when the index is out of range so that
// callers working with unvalidated documents can fail explicitly.

// GetAccessor returns the accessor at i, or nil when out of range.
func (d *Document) GetAccessor(i Index) *Accessor {
	if int(i) >= len(d.Accessors) {
		return nil
	}
	return &d.Accessors[i]
}

// GetBufferView returns the buffer view at i, or nil when out of range.
func (d *Document) GetBufferView(i Index) *BufferView {
	if int(i) >= len(d.BufferViews) {
		return nil
	}
	return &d.BufferViews[i]
}

// GetBuffer returns the buffer at i, or nil when out of range.
func (d *Document) GetBuffer(i Index) *Buffer {
	if int(i) >= len(d.Buffers) {
		return nil
	}
	return &d.Buffers[i]
}

// GetNode returns the node at i, or nil when out of range.
func (d *Document) GetNode(i Index) *Node {
	if int(i) >= len(d.Nodes) {
		return nil
	}
	return &d.Nodes[i]
}
