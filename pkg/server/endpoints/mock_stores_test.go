package endpoints

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/contact"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// MockImagesStore implements store.ImagesStore for testing using testify/mock
type MockImagesStore struct {
	mock.Mock
}

func (m *MockImagesStore) CreateImage(img *model.Image, categoryIDs []uint) error {
	return m.Called(img, categoryIDs).Error(0)
}

func (m *MockImagesStore) GetImage(id uint) (*model.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImagesStore) GetImageByFilename(filename string) (*model.Image, error) {
	args := m.Called(filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImagesStore) ListImages(filter store.ImageFilter) ([]model.Image, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Image), args.Error(1)
}

func (m *MockImagesStore) UpdateImage(id uint, update store.ImageUpdate) (*model.Image, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImagesStore) DeleteImage(id uint) (*model.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImagesStore) IncrementViewCount(id uint) error {
	return m.Called(id).Error(0)
}

// MockCategoriesStore implements store.CategoriesStore for testing using testify/mock
type MockCategoriesStore struct {
	mock.Mock
}

func (m *MockCategoriesStore) ListCategories(activeOnly bool) ([]model.Category, error) {
	args := m.Called(activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoriesStore) GetCategory(id uint) (*model.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoriesStore) GetCategoryBySlug(slug string) (*model.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoriesStore) CreateCategory(c *model.Category) error {
	return m.Called(c).Error(0)
}

func (m *MockCategoriesStore) RenameCategory(id uint, name, slug string) (*model.Category, error) {
	args := m.Called(id, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoriesStore) UpdateCategory(id uint, update store.CategoryUpdate) (*model.Category, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoriesStore) DeleteCategory(id uint) error {
	return m.Called(id).Error(0)
}

// MockFeaturedStore implements store.FeaturedStore for testing using testify/mock
type MockFeaturedStore struct {
	mock.Mock
}

func (m *MockFeaturedStore) CurrentFeatured() (*model.FeaturedImage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeaturedImage), args.Error(1)
}

func (m *MockFeaturedStore) SetFeatured(f *model.FeaturedImage) error {
	return m.Called(f).Error(0)
}

func (m *MockFeaturedStore) UpdateFeaturedStory(title, story *string) (*model.FeaturedImage, error) {
	args := m.Called(title, story)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeaturedImage), args.Error(1)
}

func (m *MockFeaturedStore) DeactivateFeatured() error {
	return m.Called().Error(0)
}

// MockBackgroundsStore implements store.BackgroundsStore for testing using testify/mock
type MockBackgroundsStore struct {
	mock.Mock
}

func (m *MockBackgroundsStore) GetBackground(section string) (*model.BackgroundSetting, error) {
	args := m.Called(section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackgroundSetting), args.Error(1)
}

func (m *MockBackgroundsStore) ListBackgrounds() ([]model.BackgroundSetting, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BackgroundSetting), args.Error(1)
}

func (m *MockBackgroundsStore) UpsertBackground(b *model.BackgroundSetting) error {
	return m.Called(b).Error(0)
}

// MockContactsStore implements store.ContactsStore for testing using testify/mock
type MockContactsStore struct {
	mock.Mock
}

func (m *MockContactsStore) CreateMessage(msg *model.ContactMessage) error {
	return m.Called(msg).Error(0)
}

func (m *MockContactsStore) ListMessages() ([]model.ContactMessage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

func (m *MockContactsStore) MarkMessageRead(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockContactsStore) DeleteMessage(id uint) error {
	return m.Called(id).Error(0)
}

// MockSettingsStore implements store.SettingsStore for testing using testify/mock
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) ListSettings() ([]model.Setting, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Setting), args.Error(1)
}

func (m *MockSettingsStore) GetSetting(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsStore) SetSetting(key, value string) error {
	return m.Called(key, value).Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	return m.Called().Error(0)
}

// MockIngester implements server.Ingester for testing using testify/mock
type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) IngestBatch(ctx context.Context, uploads []ingest.Upload, opts ingest.Options) []ingest.Result {
	args := m.Called(ctx, uploads, opts)
	return args.Get(0).([]ingest.Result)
}

func (m *MockIngester) Remove(ctx context.Context, imageID uint) (*model.Image, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

// MockTagger implements server.Tagger for testing using testify/mock
type MockTagger struct {
	mock.Mock
}

func (m *MockTagger) AddCategory(imageID, categoryID uint) error {
	return m.Called(imageID, categoryID).Error(0)
}

func (m *MockTagger) RemoveCategory(imageID, categoryID uint) error {
	return m.Called(imageID, categoryID).Error(0)
}

func (m *MockTagger) SetCategories(imageID uint, categoryIDs []uint) error {
	return m.Called(imageID, categoryIDs).Error(0)
}

func (m *MockTagger) CreateCategory(in tagging.NewCategory) (*model.Category, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockTagger) RenameCategory(categoryID uint, newName string) (*model.Category, error) {
	args := m.Called(categoryID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockTagger) DeleteCategory(categoryID uint) ([]uint, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockTagger) DefaultCategory() (*model.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockTagger) SetDefaultCategory(categoryID uint) error {
	return m.Called(categoryID).Error(0)
}

// MockBackups implements server.Backups for testing using testify/mock
type MockBackups struct {
	mock.Mock
}

func (m *MockBackups) Create(ctx context.Context, kind string) (*model.Backup, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Backup), args.Error(1)
}

func (m *MockBackups) Restore(ctx context.Context, path string) (*model.Backup, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Backup), args.Error(1)
}

func (m *MockBackups) List() ([]model.Backup, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Backup), args.Error(1)
}

func (m *MockBackups) Path(id uint) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

// MockContactRelay implements server.ContactRelay for testing using testify/mock
type MockContactRelay struct {
	mock.Mock
}

func (m *MockContactRelay) Submit(ctx context.Context, in contact.Inquiry) (*model.ContactMessage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

// MockSessions implements server.Sessions for testing using testify/mock
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Issue(username string) (string, time.Time, error) {
	args := m.Called(username)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockAuthenticator implements authenticator.Authenticator for testing using testify/mock
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Name() string {
	return "authn"
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, input authenticator.AuthenticatorInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Status(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
