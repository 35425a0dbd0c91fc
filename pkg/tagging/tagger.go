package tagging

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/slug"
)

var (
	// ErrDefaultCategory is returned when deleting the default category
	ErrDefaultCategory = errors.New("cannot delete the default category")

	// ErrNoDefaultCategory is returned when a fallback is needed but no default is recorded
	ErrNoDefaultCategory = errors.New("no default category is configured")

	// ErrInvalidName is returned for names whose slug would be empty
	ErrInvalidName = errors.New("invalid category name")
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether s is a #rrggbb color code.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// NewCategory describes a category to create.
type NewCategory struct {
	Name         string
	ColorCode    string
	DisplayOrder int
	Description  string
	// Inactive creates the category hidden from the public site
	Inactive bool
}

// Tagger is the category tagging service.
type Tagger struct {
	store store.TagsStore
	log   *zap.Logger
}

// New returns a Tagger over s. A nil logger discards output.
func New(s store.TagsStore, log *zap.Logger) *Tagger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tagger{store: s, log: log}
}

// AddCategory tags the image with the category. Tagging twice is a no-op.
func (t *Tagger) AddCategory(imageID, categoryID uint) error {
	return t.store.Transaction(func(tx store.TagsStore) error {
		if err := requireImage(tx, imageID); err != nil {
			return err
		}
		if _, err := tx.GetCategory(categoryID); err != nil {
			return fmt.Errorf("category %d: %w", categoryID, err)
		}
		return tx.AddTag(imageID, categoryID)
	})
}

// RemoveCategory untags the image. If that leaves the image without any
// category, the default category is assigned instead.
func (t *Tagger) RemoveCategory(imageID, categoryID uint) error {
	return t.store.Transaction(func(tx store.TagsStore) error {
		if err := requireImage(tx, imageID); err != nil {
			return err
		}
		if _, err := tx.GetCategory(categoryID); err != nil {
			return fmt.Errorf("category %d: %w", categoryID, err)
		}
		if _, err := tx.RemoveTag(imageID, categoryID); err != nil {
			return err
		}
		_, err := t.fallback(tx, imageID)
		return err
	})
}

// SetCategories replaces the image's categories. Duplicates are ignored and
// an empty set assigns the default category.
func (t *Tagger) SetCategories(imageID uint, categoryIDs []uint) error {
	return t.store.Transaction(func(tx store.TagsStore) error {
		if err := requireImage(tx, imageID); err != nil {
			return err
		}
		ids := dedupe(categoryIDs)
		for _, id := range ids {
			if _, err := tx.GetCategory(id); err != nil {
				return fmt.Errorf("category %d: %w", id, err)
			}
		}
		if len(ids) == 0 {
			defaultID, err := defaultCategoryID(tx)
			if err != nil {
				return err
			}
			ids = []uint{defaultID}
		}
		return tx.ReplaceTags(imageID, ids)
	})
}

// CreateCategory creates a category whose slug is derived from its name.
func (t *Tagger) CreateCategory(in NewCategory) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	s := slug.Make(name)
	if s == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, in.Name)
	}
	color := in.ColorCode
	if color == "" {
		color = model.DefaultCategoryColor
	}
	if !ValidColor(color) {
		return nil, fmt.Errorf("%w: color code %q is not #rrggbb", store.ErrInvalidInput, color)
	}

	c := &model.Category{
		Name:         name,
		Slug:         s,
		ColorCode:    color,
		DisplayOrder: in.DisplayOrder,
		Description:  in.Description,
		IsActive:     !in.Inactive,
	}
	if err := t.store.CreateCategory(c); err != nil {
		return nil, err
	}
	t.log.Info("category created", zap.Uint("category_id", c.ID), zap.String("slug", c.Slug))
	return c, nil
}

// RenameCategory changes the category's name and slug. Every image tagged
// with the category shows the new name as part of the same transaction.
func (t *Tagger) RenameCategory(categoryID uint, newName string) (*model.Category, error) {
	name := strings.TrimSpace(newName)
	s := slug.Make(name)
	if s == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}

	var renamed *model.Category
	err := t.store.Transaction(func(tx store.TagsStore) error {
		c, err := tx.RenameCategory(categoryID, name, s)
		if err != nil {
			return err
		}
		renamed = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.log.Info("category renamed", zap.Uint("category_id", categoryID), zap.String("slug", renamed.Slug))
	return renamed, nil
}

// DeleteCategory deletes a category that is not the default. Images left
// without a category get the default category. It returns the ids of the
// images that were reassigned.
func (t *Tagger) DeleteCategory(categoryID uint) ([]uint, error) {
	var reassigned []uint
	err := t.store.Transaction(func(tx store.TagsStore) error {
		if _, err := tx.GetCategory(categoryID); err != nil {
			return fmt.Errorf("category %d: %w", categoryID, err)
		}
		defaultID, ok, err := tx.DefaultCategoryID()
		if err != nil {
			return err
		}
		if ok && defaultID == categoryID {
			return ErrDefaultCategory
		}

		tagged, err := tx.TaggedImages(categoryID)
		if err != nil {
			return err
		}
		if err := tx.DeleteCategory(categoryID); err != nil {
			return err
		}
		for _, imageID := range tagged {
			assigned, err := t.fallback(tx, imageID)
			if err != nil {
				return err
			}
			if assigned {
				reassigned = append(reassigned, imageID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.log.Info("category deleted", zap.Uint("category_id", categoryID), zap.Int("reassigned", len(reassigned)))
	return reassigned, nil
}

// DefaultCategory returns the current default category.
func (t *Tagger) DefaultCategory() (*model.Category, error) {
	id, err := defaultCategoryID(t.store)
	if err != nil {
		return nil, err
	}
	return t.store.GetCategory(id)
}

// SetDefaultCategory records categoryID as the default category.
func (t *Tagger) SetDefaultCategory(categoryID uint) error {
	return t.store.Transaction(func(tx store.TagsStore) error {
		if _, err := tx.GetCategory(categoryID); err != nil {
			return fmt.Errorf("category %d: %w", categoryID, err)
		}
		return tx.SetDefaultCategoryID(categoryID)
	})
}

// EnsureDefaultCategory makes sure a default category is recorded. A
// recorded default that still exists wins; otherwise the category named
// name is used, and created if missing.
func (t *Tagger) EnsureDefaultCategory(name string) (*model.Category, error) {
	s := slug.Make(name)
	if s == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	var result *model.Category
	err := t.store.Transaction(func(tx store.TagsStore) error {
		if id, ok, err := tx.DefaultCategoryID(); err != nil {
			return err
		} else if ok {
			c, err := tx.GetCategory(id)
			if err == nil {
				result = c
				return nil
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			t.log.Warn("recorded default category no longer exists", zap.Uint("category_id", id))
		}

		c, err := tx.GetCategoryBySlug(s)
		if errors.Is(err, store.ErrNotFound) {
			c = &model.Category{
				Name:      strings.TrimSpace(name),
				Slug:      s,
				ColorCode: model.DefaultCategoryColor,
				IsActive:  true,
			}
			err = tx.CreateCategory(c)
		}
		if err != nil {
			return err
		}
		if err := tx.SetDefaultCategoryID(c.ID); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EnsureCategory returns the category whose slug matches name, creating it
// on first use.
func (t *Tagger) EnsureCategory(name string) (*model.Category, error) {
	s := slug.Make(name)
	if s == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	c, err := t.store.GetCategoryBySlug(s)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return t.CreateCategory(NewCategory{Name: name})
}

// ResolveNames maps category names or slugs to ids. Unknown names fail
// with store.ErrNotFound.
func (t *Tagger) ResolveNames(names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		s := slug.Make(name)
		if s == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		c, err := t.store.GetCategoryBySlug(s)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		ids = append(ids, c.ID)
	}
	return dedupe(ids), nil
}

// fallback assigns the default category when the image has none left.
func (t *Tagger) fallback(tx store.TagsStore, imageID uint) (bool, error) {
	count, err := tx.CountTags(imageID)
	if err != nil || count > 0 {
		return false, err
	}
	defaultID, err := defaultCategoryID(tx)
	if err != nil {
		return false, err
	}
	if err := tx.AddTag(imageID, defaultID); err != nil {
		return false, err
	}
	t.log.Debug("assigned default category", zap.Uint("image_id", imageID), zap.Uint("category_id", defaultID))
	return true, nil
}

func defaultCategoryID(s store.TagsStore) (uint, error) {
	id, ok, err := s.DefaultCategoryID()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNoDefaultCategory
	}
	return id, nil
}

func requireImage(tx store.TagsStore, imageID uint) error {
	exists, err := tx.ImageExists(imageID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("image %d: %w", imageID, store.ErrNotFound)
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
