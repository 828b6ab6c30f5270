// Package flatten converts a nested document into a flat map of dot-joined
// key paths to string values, ready to be registered as a property source.
package flatten
