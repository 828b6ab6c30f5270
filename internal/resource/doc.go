// Package resource resolves configuration locations (classpath:, file: and
// bare paths, optionally marked optional:) into readable resources.
package resource
