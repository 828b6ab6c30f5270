// Package application wires configuration discovery, the property loaders,
// the environment, the runner and the HTTP server together, keeping the main
// package focused on flag parsing and process lifecycle.
package application
