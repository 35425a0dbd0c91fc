package store

import "github.com/doodlesbykumbi/portfolio-cms/pkg/model"

// CategoryUpdate holds the plain-update fields of a category.
// Renames go through TagsStore.RenameCategory.
type CategoryUpdate struct {
	ColorCode    *string
	DisplayOrder *int
	Description  *string
	IsActive     *bool
}

// CategoriesStore abstracts category storage operations
type CategoriesStore interface {
	// ListCategories returns categories ordered by display order then name.
	ListCategories(activeOnly bool) ([]model.Category, error)

	// GetCategory returns ErrNotFound if the category doesn't exist.
	GetCategory(id uint) (*model.Category, error)

	// GetCategoryBySlug returns ErrNotFound if no category has slug.
	GetCategoryBySlug(slug string) (*model.Category, error)

	// CreateCategory inserts c. Returns ErrDuplicateSlug if c.Slug is taken.
	CreateCategory(c *model.Category) error

	// RenameCategory sets the name and slug of a category.
	// Returns ErrDuplicateSlug if another category already uses slug.
	RenameCategory(id uint, name, slug string) (*model.Category, error)

	// UpdateCategory applies update and returns the updated category.
	UpdateCategory(id uint, update CategoryUpdate) (*model.Category, error)

	// DeleteCategory removes the category row and its associations.
	DeleteCategory(id uint) error
}

// TagsStore abstracts the image/category association.
type TagsStore interface {
	CategoriesStore

	// Transaction runs fn against a store bound to a single transaction.
	// The transaction is rolled back if fn returns an error.
	Transaction(fn func(tx TagsStore) error) error

	// ImageExists reports whether the image row exists.
	ImageExists(imageID uint) (bool, error)

	// HasTag reports whether the association exists.
	HasTag(imageID, categoryID uint) (bool, error)

	// AddTag creates the association. It is a no-op if it already exists.
	AddTag(imageID, categoryID uint) error

	// RemoveTag deletes the association and reports whether it existed.
	RemoveTag(imageID, categoryID uint) (bool, error)

	// CountTags returns how many categories the image has.
	CountTags(imageID uint) (int64, error)

	// TaggedImages returns the ids of every image tagged with the category.
	TaggedImages(categoryID uint) ([]uint, error)

	// ReplaceTags makes categoryIDs the image's exact category set.
	ReplaceTags(imageID uint, categoryIDs []uint) error

	// DefaultCategoryID returns the recorded default category id, if any.
	DefaultCategoryID() (uint, bool, error)

	// SetDefaultCategoryID records id as the default category.
	SetDefaultCategoryID(id uint) error
}
