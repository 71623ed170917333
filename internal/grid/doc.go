// Package grid holds the signal-to-decision rule engine.
//
// snapshot.go defines the sensor snapshot and its value domains.
// generator.go draws synthetic snapshots from an injected random source.
// engine.go classifies a snapshot into a tier and stress index.
// messages.go renders the human-readable alert and status lines.
//
// Nothing in this package performs I/O or keeps state between calls.
package grid
