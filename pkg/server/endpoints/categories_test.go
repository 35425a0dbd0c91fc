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
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestHandleCreateCategory(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("CreateCategory", tagging.NewCategory{Name: "Portraits", ColorCode: "#112233", DisplayOrder: 2}).
			Return(&model.Category{ID: 4, Name: "Portraits", Slug: "portraits", ColorCode: "#112233", IsActive: true}, nil)

		body := `{"name":"Portraits","color_code":"#112233","display_order":2}`
		w := httptest.NewRecorder()
		handleCreateCategory(tagger, nil)(w, httptest.NewRequest("POST", "/admin/categories", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, w.Code)
		var c model.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		assert.Equal(t, "portraits", c.Slug)
	})

	t.Run("passes an inactive flag through", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("CreateCategory", tagging.NewCategory{Name: "Drafts", Inactive: true}).
			Return(&model.Category{ID: 5, Name: "Drafts", Slug: "drafts"}, nil)

		w := httptest.NewRecorder()
		handleCreateCategory(tagger, nil)(w, httptest.NewRequest("POST", "/admin/categories", strings.NewReader(`{"name":"Drafts","is_active":false}`)))

		assert.Equal(t, http.StatusCreated, w.Code)
		tagger.AssertExpectations(t)
	})

	t.Run("returns 409 for a duplicate slug", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("CreateCategory", mock.Anything).Return(nil, store.ErrDuplicateSlug)

		w := httptest.NewRecorder()
		handleCreateCategory(tagger, nil)(w, httptest.NewRequest("POST", "/admin/categories", strings.NewReader(`{"name":"Portraits"}`)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandleUpdateCategory(t *testing.T) {
	t.Run("renames and then updates", func(t *testing.T) {
		tagger := new(MockTagger)
		categories := new(MockCategoriesStore)
		order := 3
		tagger.On("RenameCategory", uint(2), "Street").Return(&model.Category{ID: 2, Name: "Street", Slug: "street"}, nil)
		categories.On("UpdateCategory", uint(2), store.CategoryUpdate{DisplayOrder: &order}).
			Return(&model.Category{ID: 2, Name: "Street", Slug: "street", DisplayOrder: 3}, nil)

		req := withID(httptest.NewRequest("PATCH", "/admin/categories/2", strings.NewReader(`{"name":"Street","display_order":3}`)), "2")
		w := httptest.NewRecorder()
		handleUpdateCategory(tagger, categories, nil)(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var c model.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		assert.Equal(t, 3, c.DisplayOrder)
		tagger.AssertExpectations(t)
		categories.AssertExpectations(t)
	})

	t.Run("rename only skips the plain update", func(t *testing.T) {
		tagger := new(MockTagger)
		categories := new(MockCategoriesStore)
		tagger.On("RenameCategory", uint(2), "Street").Return(&model.Category{ID: 2, Name: "Street", Slug: "street"}, nil)

		req := withID(httptest.NewRequest("PATCH", "/admin/categories/2", strings.NewReader(`{"name":"Street"}`)), "2")
		w := httptest.NewRecorder()
		handleUpdateCategory(tagger, categories, nil)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		categories.AssertNotCalled(t, "UpdateCategory", mock.Anything, mock.Anything)
	})

	t.Run("rejects a bad color", func(t *testing.T) {
		req := withID(httptest.NewRequest("PATCH", "/admin/categories/2", strings.NewReader(`{"color_code":"orange"}`)), "2")
		w := httptest.NewRecorder()
		handleUpdateCategory(new(MockTagger), new(MockCategoriesStore), nil)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty body returns the current category", func(t *testing.T) {
		categories := new(MockCategoriesStore)
		categories.On("GetCategory", uint(2)).Return(&model.Category{ID: 2, Name: "Street"}, nil)

		req := withID(httptest.NewRequest("PATCH", "/admin/categories/2", strings.NewReader(`{}`)), "2")
		w := httptest.NewRecorder()
		handleUpdateCategory(new(MockTagger), categories, nil)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		categories.AssertExpectations(t)
	})
}

func TestHandleDeleteCategory(t *testing.T) {
	t.Run("reports reassigned images", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("DeleteCategory", uint(6)).Return([]uint{10, 11}, nil)

		req := withID(httptest.NewRequest("DELETE", "/admin/categories/6", nil), "6")
		w := httptest.NewRecorder()
		handleDeleteCategory(tagger, nil, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"reassigned_image_ids":[10,11]}`, w.Body.String())
	})

	t.Run("refuses to delete the default category", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("DeleteCategory", uint(1)).Return(nil, tagging.ErrDefaultCategory)

		req := withID(httptest.NewRequest("DELETE", "/admin/categories/1", nil), "1")
		w := httptest.NewRecorder()
		handleDeleteCategory(tagger, nil, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDefaultCategoryEndpoints(t *testing.T) {
	t.Run("gets the default", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("DefaultCategory").Return(&model.Category{ID: 1, Slug: "uncategorized"}, nil)

		w := httptest.NewRecorder()
		handleGetDefaultCategory(tagger)(w, httptest.NewRequest("GET", "/admin/categories/default", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "uncategorized")
	})

	t.Run("sets the default", func(t *testing.T) {
		tagger := new(MockTagger)
		tagger.On("SetDefaultCategory", uint(3)).Return(nil)

		req := withID(httptest.NewRequest("PUT", "/admin/categories/3/default", nil), "3")
		w := httptest.NewRecorder()
		handleSetDefaultCategory(tagger, nil)(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		tagger.AssertExpectations(t)
	})
}
