// Package bootstrap discovers configuration files in the configured search and
// additional locations and registers the property sources they produce with an
// environment. Loaders are passed in explicitly by the embedding application.
package bootstrap
