// Package provider implements tableschema.Provider over common physical
// sources: in-memory slices, CSV and JSON row documents.
//
// Every provider is restartable. Rows returns a fresh sequence on each call,
// reopening the underlying file or re-reading the byte slice, so a Table can
// be iterated more than once.
package provider
