// Package migrations registers the schema migrations. It is imported for
// its side effects by cmd/storefront so `storefront migrate` sees them.
package migrations
