// Package schema validates raw JSON configuration documents against a JSON
// Schema before they are flattened.
package schema
