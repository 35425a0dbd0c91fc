package endpoints

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// FeaturedRequest is the body of PUT /admin/featured
type FeaturedRequest struct {
	ImageID   uint       `json:"image_id"`
	Title     string     `json:"title"`
	Story     string     `json:"story"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// FeaturedStoryRequest is the body of PATCH /admin/featured/story
type FeaturedStoryRequest struct {
	Title *string `json:"title"`
	Story *string `json:"story"`
}

// BackgroundRequest is the body of PUT /admin/backgrounds/{section}
type BackgroundRequest struct {
	ImageID   *uint  `json:"image_id"`
	ColorCode string `json:"color_code"`
	IsActive  *bool  `json:"is_active"`
}

// RegisterFeaturedEndpoints registers featured image administration
func RegisterFeaturedEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/featured").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleSetFeatured(s.FeaturedStore, s.Audit)).Methods("PUT")
	r.HandleFunc("/story", handleUpdateFeaturedStory(s.FeaturedStore, s.Audit)).Methods("PATCH")
	r.HandleFunc("", handleDeactivateFeatured(s.FeaturedStore, s.Audit)).Methods("DELETE")
}

// RegisterBackgroundsEndpoints registers section background administration
func RegisterBackgroundsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/backgrounds").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleListBackgrounds(s.BackgroundsStore)).Methods("GET")
	r.HandleFunc("/{section}", handleUpsertBackground(s.BackgroundsStore, s.Audit)).Methods("PUT")
}

func handleSetFeatured(featuredStore store.FeaturedStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FeaturedRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}
		if req.ImageID == 0 {
			respondWithError(w, http.StatusBadRequest, "image_id is required")
			return
		}

		start := time.Now().UTC()
		if req.StartDate != nil {
			start = req.StartDate.UTC()
		}
		if req.EndDate != nil && req.EndDate.Before(start) {
			respondWithError(w, http.StatusBadRequest, "end_date is before start_date")
			return
		}

		f := &model.FeaturedImage{
			ImageID:   req.ImageID,
			Title:     strings.TrimSpace(req.Title),
			Story:     req.Story,
			StartDate: start,
			EndDate:   req.EndDate,
			IsActive:  true,
		}
		err := featuredStore.SetFeatured(f)
		user, clientIP := actor(r)
		auditor.Log(audit.ImageEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpFeature, ImageID: req.ImageID,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, f)
	}
}

func handleUpdateFeaturedStory(featuredStore store.FeaturedStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FeaturedStoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}

		f, err := featuredStore.UpdateFeaturedStory(req.Title, req.Story)
		user, clientIP := actor(r)
		auditor.Log(audit.SiteEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpUpdate, Resource: "featured:story",
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, f)
	}
}

func handleDeactivateFeatured(featuredStore store.FeaturedStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := featuredStore.DeactivateFeatured()
		user, clientIP := actor(r)
		auditor.Log(audit.SiteEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpDelete, Resource: "featured",
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListBackgrounds(backgroundsStore store.BackgroundsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backgrounds, err := backgroundsStore.ListBackgrounds()
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if backgrounds == nil {
			backgrounds = []model.BackgroundSetting{}
		}
		respondWithJSON(w, http.StatusOK, backgrounds)
	}
}

func handleUpsertBackground(backgroundsStore store.BackgroundsStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := strings.TrimSpace(mux.Vars(r)["section"])
		var req BackgroundRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}

		color := req.ColorCode
		if color == "" {
			color = model.DefaultBackgroundColor
		}
		if !tagging.ValidColor(color) {
			respondWithError(w, http.StatusBadRequest, "color_code must look like #rrggbb")
			return
		}

		bg := &model.BackgroundSetting{
			Section:   section,
			ImageID:   req.ImageID,
			ColorCode: color,
			IsActive:  req.IsActive == nil || *req.IsActive,
		}
		err := backgroundsStore.UpsertBackground(bg)
		user, clientIP := actor(r)
		auditor.Log(audit.SiteEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpUpdate, Resource: "background:" + section,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, bg)
	}
}
