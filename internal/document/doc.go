// Package document models a parsed configuration file as an ordered tree of
// key/value entries whose values are either scalars or nested documents, and
// provides JSON and YAML parsers that build it while preserving source order.
package document
