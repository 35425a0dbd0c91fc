// Package tagging manages which categories an image belongs to.
//
// The Tagger keeps two rules true across every operation:
//
//   - an image/category pair is associated at most once
//   - an image that loses its last category gets the default category
//
// Every mutating operation runs inside a single store transaction, so a
// failure leaves the catalog as it was before the call.
//
// # Default Category
//
// The default category id is recorded in the settings table. At startup
// EnsureDefaultCategory resolves the configured name, creating the category
// when needed. The default category cannot be deleted.
package tagging
