package ingest

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *mockStorage) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *mockStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockStorage) List(ctx context.Context) ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

type mockImagesStore struct {
	mock.Mock
}

func (m *mockImagesStore) CreateImage(img *model.Image, categoryIDs []uint) error {
	args := m.Called(img, categoryIDs)
	return args.Error(0)
}

func (m *mockImagesStore) GetImage(id uint) (*model.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *mockImagesStore) GetImageByFilename(filename string) (*model.Image, error) {
	args := m.Called(filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *mockImagesStore) ListImages(filter store.ImageFilter) ([]model.Image, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Image), args.Error(1)
}

func (m *mockImagesStore) UpdateImage(id uint, update store.ImageUpdate) (*model.Image, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *mockImagesStore) DeleteImage(id uint) (*model.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *mockImagesStore) IncrementViewCount(id uint) error {
	return m.Called(id).Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveNames(names []string) ([]uint, error) {
	args := m.Called(names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockResolver) DefaultCategory() (*model.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}
