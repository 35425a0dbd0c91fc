// Package store provides storage abstractions for the portfolio catalog.
//
// This package defines interfaces for catalog operations, allowing the
// ingestion service, the category tagger and the HTTP endpoints to be
// decoupled from the specific database implementation. Implementations
// live in the gorm subpackage.
//
// # Available Stores
//
//   - ImagesStore: image rows and their category lists
//   - CategoriesStore: category rows
//   - TagsStore: image/category associations and the default category
//   - FeaturedStore: the featured image (at most one active)
//   - BackgroundsStore: per-section backgrounds
//   - ContactsStore: contact form messages
//   - BackupsStore: backup records, catalog snapshots
//   - SettingsStore: free-form settings
//   - AdminsStore: administrator accounts
//   - HealthStore: connectivity check
//
// # Errors
//
// Every implementation maps "no such row" to ErrNotFound and slug
// conflicts to ErrDuplicateSlug:
//
//	img, err := images.GetImage(id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // 404
//	}
package store
