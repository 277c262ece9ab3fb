// Package memory provides map-backed repositories used when no database is
// configured and in tests. All types are safe for concurrent use.
package memory
