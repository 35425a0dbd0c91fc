package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// ImageFilter narrows ListImages.
type ImageFilter struct {
	// CategorySlug restricts the result to images tagged with this category
	CategorySlug string
	// ActiveOnly skips inactive images
	ActiveOnly bool
}

// ImageUpdate holds the editable fields of an image. Nil fields are left unchanged.
type ImageUpdate struct {
	Title       *string
	Description *string
	Location    *string
	IsActive    *bool
}

// ImagesStore abstracts image storage operations.
// Every returned image has its Categories populated.
type ImagesStore interface {
	// CreateImage inserts img and tags it with categoryIDs in one transaction.
	// Duplicate ids are ignored. Returns ErrNotFound if a category does not exist.
	CreateImage(img *model.Image, categoryIDs []uint) error

	// GetImage returns ErrNotFound if the image doesn't exist.
	GetImage(id uint) (*model.Image, error)

	// GetImageByFilename looks up an image by its stored filename.
	GetImageByFilename(filename string) (*model.Image, error)

	// ListImages returns images, newest upload first.
	ListImages(filter ImageFilter) ([]model.Image, error)

	// UpdateImage applies update and returns the updated image.
	UpdateImage(id uint, update ImageUpdate) (*model.Image, error)

	// DeleteImage removes the image, its associations and featured rows,
	// and clears background references to it. The removed row is returned.
	DeleteImage(id uint) (*model.Image, error)

	// IncrementViewCount adds one view to the image.
	IncrementViewCount(id uint) error
}
