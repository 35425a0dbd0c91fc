package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

func TestHandleSetFeatured(t *testing.T) {
	t.Run("features an image", func(t *testing.T) {
		featured := new(MockFeaturedStore)
		featured.On("SetFeatured", mock.MatchedBy(func(f *model.FeaturedImage) bool {
			return f.ImageID == 5 && f.Title == "Harbour" && f.IsActive && !f.StartDate.IsZero()
		})).Return(nil)

		body := `{"image_id":5,"title":" Harbour ","story":"Shot at *dawn*"}`
		w := httptest.NewRecorder()
		handleSetFeatured(featured, nil)(w, httptest.NewRequest("PUT", "/admin/featured", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		featured.AssertExpectations(t)
	})

	t.Run("requires an image", func(t *testing.T) {
		w := httptest.NewRecorder()
		handleSetFeatured(new(MockFeaturedStore), nil)(w, httptest.NewRequest("PUT", "/admin/featured", strings.NewReader(`{"title":"x"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an end before the start", func(t *testing.T) {
		body := `{"image_id":5,"start_date":"2026-06-01T00:00:00Z","end_date":"2026-05-01T00:00:00Z"}`
		w := httptest.NewRecorder()
		handleSetFeatured(new(MockFeaturedStore), nil)(w, httptest.NewRequest("PUT", "/admin/featured", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for a missing image", func(t *testing.T) {
		featured := new(MockFeaturedStore)
		featured.On("SetFeatured", mock.Anything).Return(store.ErrNotFound)

		w := httptest.NewRecorder()
		handleSetFeatured(featured, nil)(w, httptest.NewRequest("PUT", "/admin/featured", strings.NewReader(`{"image_id":99}`)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleFeaturedStoryAndDeactivate(t *testing.T) {
	t.Run("updates the story", func(t *testing.T) {
		featured := new(MockFeaturedStore)
		story := "New words"
		featured.On("UpdateFeaturedStory", (*string)(nil), &story).Return(&model.FeaturedImage{ID: 1, Story: story}, nil)

		w := httptest.NewRecorder()
		handleUpdateFeaturedStory(featured, nil)(w, httptest.NewRequest("PATCH", "/admin/featured/story", strings.NewReader(`{"story":"New words"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		featured.AssertExpectations(t)
	})

	t.Run("deactivates", func(t *testing.T) {
		featured := new(MockFeaturedStore)
		featured.On("DeactivateFeatured").Return(nil)

		w := httptest.NewRecorder()
		handleDeactivateFeatured(featured, nil)(w, httptest.NewRequest("DELETE", "/admin/featured", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHandleUpsertBackground(t *testing.T) {
	upsert := func(backgrounds *MockBackgroundsStore, section, body string) *httptest.ResponseRecorder {
		req := mux.SetURLVars(httptest.NewRequest("PUT", "/admin/backgrounds/"+section, strings.NewReader(body)), map[string]string{"section": section})
		w := httptest.NewRecorder()
		handleUpsertBackground(backgrounds, nil)(w, req)
		return w
	}

	t.Run("defaults the color and activates", func(t *testing.T) {
		backgrounds := new(MockBackgroundsStore)
		backgrounds.On("UpsertBackground", mock.MatchedBy(func(b *model.BackgroundSetting) bool {
			return b.Section == "contact" && b.ColorCode == model.DefaultBackgroundColor && b.IsActive
		})).Return(nil)

		w := upsert(backgrounds, "contact", `{}`)

		require.Equal(t, http.StatusOK, w.Code)
		var bg model.BackgroundSetting
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bg))
		assert.Equal(t, "contact", bg.Section)
		backgrounds.AssertExpectations(t)
	})

	t.Run("rejects a bad color", func(t *testing.T) {
		w := upsert(new(MockBackgroundsStore), "contact", `{"color_code":"blue"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
