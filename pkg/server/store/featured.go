package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// FeaturedStore abstracts featured image operations
type FeaturedStore interface {
	// CurrentFeatured returns the active featured row, or ErrNotFound.
	CurrentFeatured() (*model.FeaturedImage, error)

	// SetFeatured deactivates any active row and inserts f as the active one
	// in a single transaction. Returns ErrNotFound if f.ImageID doesn't exist.
	SetFeatured(f *model.FeaturedImage) error

	// UpdateFeaturedStory changes the title and story of the active row.
	UpdateFeaturedStory(title, story *string) (*model.FeaturedImage, error)

	// DeactivateFeatured clears the active row. It is a no-op when none is active.
	DeactivateFeatured() error
}
