package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/markdown"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/slug"
)

// CategoryView is a category with its description rendered.
type CategoryView struct {
	model.Category
	DescriptionHTML string `json:"description_html,omitempty"`
}

// PortfolioResponse represents the response from /api/portfolio
type PortfolioResponse struct {
	Images     []model.Image  `json:"images"`
	Categories []CategoryView `json:"categories"`
}

// FeaturedResponse represents the response from /api/featured
type FeaturedResponse struct {
	model.FeaturedImage
	StoryHTML string       `json:"story_html,omitempty"`
	Image     *model.Image `json:"image"`
}

// BackgroundResponse represents the response from /api/background/{section}
type BackgroundResponse struct {
	Section   string       `json:"section"`
	ColorCode string       `json:"color_code"`
	Image     *model.Image `json:"image,omitempty"`
}

// RegisterPublicEndpoints registers the read-only site API
func RegisterPublicEndpoints(s *server.Server) {
	api := s.Router.PathPrefix("/api").Subrouter()

	// GET /api/portfolio[?category=slug]
	api.HandleFunc("/portfolio", handlePortfolio(s.ImagesStore, s.CategoriesStore, s.Log)).Methods("GET")

	// GET /api/images/{id} - counts a view
	api.HandleFunc("/images/{id:[0-9]+}", handleGetImage(s.ImagesStore, s.Log)).Methods("GET")

	// GET /api/categories
	api.HandleFunc("/categories", handleListCategories(s.CategoriesStore, true, s.Log)).Methods("GET")

	// GET /api/featured
	api.HandleFunc("/featured", handleGetFeatured(s.FeaturedStore, s.ImagesStore, s.Log)).Methods("GET")

	// GET /api/background/{section}
	api.HandleFunc("/background/{section}", handleGetBackground(s.BackgroundsStore, s.ImagesStore)).Methods("GET")
}

func categoryViews(categories []model.Category, log *zap.Logger) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		html, err := markdown.ToHTML(c.Description)
		if err != nil {
			log.Warn("failed to render category description", zap.Uint("category_id", c.ID), zap.Error(err))
		}
		views = append(views, CategoryView{Category: c, DescriptionHTML: html})
	}
	return views
}

func handlePortfolio(imagesStore store.ImagesStore, categoriesStore store.CategoriesStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.ImageFilter{ActiveOnly: true}
		if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" && c != "all" {
			filter.CategorySlug = slug.Make(c)
		}

		images, err := imagesStore.ListImages(filter)
		if err != nil {
			log.Error("failed to list images", zap.Error(err))
			respondWithErr(w, err)
			return
		}
		categories, err := categoriesStore.ListCategories(true)
		if err != nil {
			log.Error("failed to list categories", zap.Error(err))
			respondWithErr(w, err)
			return
		}
		if images == nil {
			images = []model.Image{}
		}

		respondWithJSON(w, http.StatusOK, PortfolioResponse{
			Images:     images,
			Categories: categoryViews(categories, log),
		})
	}
}

func handleGetImage(imagesStore store.ImagesStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}

		img, err := imagesStore.GetImage(id)
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if !img.IsActive {
			respondWithError(w, http.StatusNotFound, "image not found")
			return
		}

		if err := imagesStore.IncrementViewCount(id); err != nil {
			log.Warn("failed to count image view", zap.Uint("image_id", id), zap.Error(err))
		} else {
			img.ViewCount++
		}
		respondWithJSON(w, http.StatusOK, img)
	}
}

func handleListCategories(categoriesStore store.CategoriesStore, activeOnly bool, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := categoriesStore.ListCategories(activeOnly)
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, categoryViews(categories, log))
	}
}

func handleGetFeatured(featuredStore store.FeaturedStore, imagesStore store.ImagesStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := featuredStore.CurrentFeatured()
		if err != nil {
			respondWithErr(w, err)
			return
		}

		img, err := imagesStore.GetImage(featured.ImageID)
		if err != nil {
			respondWithErr(w, err)
			return
		}

		story, err := markdown.ToHTML(featured.Story)
		if err != nil {
			log.Warn("failed to render featured story", zap.Uint("featured_id", featured.ID), zap.Error(err))
		}
		respondWithJSON(w, http.StatusOK, FeaturedResponse{
			FeaturedImage: *featured,
			StoryHTML:     story,
			Image:         img,
		})
	}
}

func handleGetBackground(backgroundsStore store.BackgroundsStore, imagesStore store.ImagesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := mux.Vars(r)["section"]

		resp := BackgroundResponse{Section: section, ColorCode: model.DefaultBackgroundColor}
		bg, err := backgroundsStore.GetBackground(section)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondWithErr(w, err)
			return
		}
		if bg != nil && bg.IsActive {
			if bg.ColorCode != "" {
				resp.ColorCode = bg.ColorCode
			}
			if bg.ImageID != nil {
				img, err := imagesStore.GetImage(*bg.ImageID)
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					respondWithErr(w, err)
					return
				}
				resp.Image = img
			}
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}
