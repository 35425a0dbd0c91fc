package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

func TestHandlePortfolio(t *testing.T) {
	t.Run("lists active images with rendered categories", func(t *testing.T) {
		images := new(MockImagesStore)
		categories := new(MockCategoriesStore)
		images.On("ListImages", store.ImageFilter{ActiveOnly: true}).
			Return([]model.Image{{ID: 1, Title: "Dusk", IsActive: true}}, nil)
		categories.On("ListCategories", true).
			Return([]model.Category{{ID: 2, Name: "Landscapes", Slug: "landscapes", Description: "Wide *open* places"}}, nil)

		req := httptest.NewRequest("GET", "/api/portfolio", nil)
		w := httptest.NewRecorder()
		handlePortfolio(images, categories, zap.NewNop())(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp PortfolioResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Images, 1)
		assert.Equal(t, "Dusk", resp.Images[0].Title)
		require.Len(t, resp.Categories, 1)
		assert.Contains(t, resp.Categories[0].DescriptionHTML, "<em>open</em>")
		images.AssertExpectations(t)
	})

	t.Run("filters by category slug", func(t *testing.T) {
		images := new(MockImagesStore)
		categories := new(MockCategoriesStore)
		images.On("ListImages", store.ImageFilter{ActiveOnly: true, CategorySlug: "black-white"}).Return(nil, nil)
		categories.On("ListCategories", true).Return([]model.Category{}, nil)

		req := httptest.NewRequest("GET", "/api/portfolio?category=Black+%26+White", nil)
		w := httptest.NewRecorder()
		handlePortfolio(images, categories, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"images":[]`)
		images.AssertExpectations(t)
	})

	t.Run("treats all as no filter", func(t *testing.T) {
		images := new(MockImagesStore)
		categories := new(MockCategoriesStore)
		images.On("ListImages", store.ImageFilter{ActiveOnly: true}).Return([]model.Image{}, nil)
		categories.On("ListCategories", true).Return([]model.Category{}, nil)

		req := httptest.NewRequest("GET", "/api/portfolio?category=all", nil)
		w := httptest.NewRecorder()
		handlePortfolio(images, categories, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		images.AssertExpectations(t)
	})
}

func TestHandleGetImage(t *testing.T) {
	t.Run("counts a view", func(t *testing.T) {
		images := new(MockImagesStore)
		images.On("GetImage", uint(7)).Return(&model.Image{ID: 7, IsActive: true, ViewCount: 3}, nil)
		images.On("IncrementViewCount", uint(7)).Return(nil)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/api/images/7", nil), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handleGetImage(images, zap.NewNop())(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var img model.Image
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &img))
		assert.Equal(t, 4, img.ViewCount)
		images.AssertExpectations(t)
	})

	t.Run("hides inactive images", func(t *testing.T) {
		images := new(MockImagesStore)
		images.On("GetImage", uint(7)).Return(&model.Image{ID: 7, IsActive: false}, nil)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/api/images/7", nil), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handleGetImage(images, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		images.AssertNotCalled(t, "IncrementViewCount", uint(7))
	})

	t.Run("returns 404 for a missing image", func(t *testing.T) {
		images := new(MockImagesStore)
		images.On("GetImage", uint(9)).Return(nil, store.ErrNotFound)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/api/images/9", nil), map[string]string{"id": "9"})
		w := httptest.NewRecorder()
		handleGetImage(images, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGetFeatured(t *testing.T) {
	t.Run("renders the story", func(t *testing.T) {
		featured := new(MockFeaturedStore)
		images := new(MockImagesStore)
		featured.On("CurrentFeatured").Return(&model.FeaturedImage{ID: 1, ImageID: 5, Story: "A **quiet** morning"}, nil)
		images.On("GetImage", uint(5)).Return(&model.Image{ID: 5, Title: "Harbour"}, nil)

		w := httptest.NewRecorder()
		handleGetFeatured(featured, images, zap.NewNop())(w, httptest.NewRequest("GET", "/api/featured", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp FeaturedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.StoryHTML, "<strong>quiet</strong>")
		require.NotNil(t, resp.Image)
		assert.Equal(t, "Harbour", resp.Image.Title)
	})

	t.Run("returns 404 when nothing is featured", func(t *testing.T) {
		featured := new(MockFeaturedStore)
		featured.On("CurrentFeatured").Return(nil, store.ErrNotFound)

		w := httptest.NewRecorder()
		handleGetFeatured(featured, new(MockImagesStore), zap.NewNop())(w, httptest.NewRequest("GET", "/api/featured", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGetBackground(t *testing.T) {
	t.Run("falls back to the default color", func(t *testing.T) {
		backgrounds := new(MockBackgroundsStore)
		backgrounds.On("GetBackground", "about").Return(nil, store.ErrNotFound)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/api/background/about", nil), map[string]string{"section": "about"})
		w := httptest.NewRecorder()
		handleGetBackground(backgrounds, new(MockImagesStore))(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp BackgroundResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "about", resp.Section)
		assert.Equal(t, model.DefaultBackgroundColor, resp.ColorCode)
		assert.Nil(t, resp.Image)
	})

	t.Run("includes the configured image", func(t *testing.T) {
		imageID := uint(3)
		backgrounds := new(MockBackgroundsStore)
		images := new(MockImagesStore)
		backgrounds.On("GetBackground", "hero").
			Return(&model.BackgroundSetting{Section: "hero", ImageID: &imageID, ColorCode: "#000000", IsActive: true}, nil)
		images.On("GetImage", imageID).Return(&model.Image{ID: imageID, Filename: "hero.jpg"}, nil)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/api/background/hero", nil), map[string]string{"section": "hero"})
		w := httptest.NewRecorder()
		handleGetBackground(backgrounds, images)(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp BackgroundResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "#000000", resp.ColorCode)
		require.NotNil(t, resp.Image)
		assert.Equal(t, "hero.jpg", resp.Image.Filename)
	})
}
