// Package environment holds the ordered property sources of a running
// application and resolves property lookups and ${key:default} placeholders
// against them.
package environment
