// Package runner prints configuration values injected from the environment:
// the single configured property on Run, or every effective property with its
// origin on List.
package runner
