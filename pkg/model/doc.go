// Package model defines the database models for the portfolio catalog.
//
// This package contains GORM models that map to the catalog schema created
// by the SQL migrations under db/migrations.
//
// # Core Models
//
//   - Image: an ingested photograph and its normalized capture metadata
//   - Category: a display grouping with a globally unique slug
//   - ImageCategory: the image/category association, unique per pair
//   - FeaturedImage: the image currently promoted on the home page
//   - BackgroundSetting: per-section background image or color
//   - ContactMessage: an inquiry submitted through the contact form
//   - Backup: a record of a backup archive
//   - Setting: free-form site settings
//   - AdminUser: an administrator account
//
// # Database Schema
//
//   - images, categories, image_categories
//   - featured_images, background_settings
//   - contact_messages, backups, settings, admin_users
package model

// All returns every model in dependency order, for schema creation in
// environments that do not run the SQL migrations.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Image{},
		&ImageCategory{},
		&FeaturedImage{},
		&BackgroundSetting{},
		&ContactMessage{},
		&Backup{},
		&Setting{},
		&AdminUser{},
	}
}
