// Package accessor turns an accessor record plus its backing bytes into a
// lazy sequence of strongly-typed elements.
//
// Construction is the only place that can fail: the byte slice is checked
// once against the accessor's offset, count, stride, and element size, and a
// mismatched component type for the requested shape is rejected up front.
// After that, iteration is infallible and allocation-free; elements are
// decoded on demand from the borrowed slice. A sequence is restartable via
// Reset, and two fresh sequences over the same bytes yield identical output.
package accessor
