// Package cube provides types for working with seismic cube service
// responses.
//
// A cube is a seismic volume stored as a set of fragments. The service
// describes a cube with a manifest document: volume descriptors (where
// fragments live and their shapes), optional attribute descriptors, and
// the line numbers and labels for every dimension. Query results are
// returned as a process header plus a set of tiles that the caller
// assembles into a dense array.
package cube
