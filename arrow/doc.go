// Package arrow provides Apache Arrow integration for QNetX-Engine.
// This package implements:
// - The channel snapshot schema
// - Conversion between channel rows and Arrow records
// - Arrow IPC serialization for audit export
package arrow
