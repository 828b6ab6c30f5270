// Package propsource defines named, origin-tracked property sources and the
// loaders that build them from JSON and YAML configuration files.
package propsource
