package endpoints

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// CategoryRequest is the body of POST /admin/categories
type CategoryRequest struct {
	Name         string `json:"name"`
	ColorCode    string `json:"color_code"`
	DisplayOrder int    `json:"display_order"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
}

// CategoryUpdateRequest is the body of PATCH /admin/categories/{id}
type CategoryUpdateRequest struct {
	Name         *string `json:"name"`
	ColorCode    *string `json:"color_code"`
	DisplayOrder *int    `json:"display_order"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

// RegisterCategoriesEndpoints registers category administration
func RegisterCategoriesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/categories").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleListCategories(s.CategoriesStore, false, s.Log)).Methods("GET")
	r.HandleFunc("", handleCreateCategory(s.Tagger, s.Audit)).Methods("POST")
	r.HandleFunc("/default", handleGetDefaultCategory(s.Tagger)).Methods("GET")
	r.HandleFunc("/{id:[0-9]+}", handleUpdateCategory(s.Tagger, s.CategoriesStore, s.Audit)).Methods("PATCH")
	r.HandleFunc("/{id:[0-9]+}", handleDeleteCategory(s.Tagger, s.Audit, s.Log)).Methods("DELETE")
	r.HandleFunc("/{id:[0-9]+}/default", handleSetDefaultCategory(s.Tagger, s.Audit)).Methods("PUT")
}

func handleCreateCategory(tagger server.Tagger, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}

		c, err := tagger.CreateCategory(tagging.NewCategory{
			Name:         req.Name,
			ColorCode:    req.ColorCode,
			DisplayOrder: req.DisplayOrder,
			Description:  req.Description,
			Inactive:     req.IsActive != nil && !*req.IsActive,
		})
		user, clientIP := actor(r)
		event := audit.CategoryEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpCreate, Name: req.Name,
			Success: err == nil, ErrorMessage: errorMessage(err),
		}
		if c != nil {
			event.CategoryID = c.ID
		}
		auditor.Log(event)
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, c)
	}
}

// handleUpdateCategory renames first when a name is given, then applies the
// plain field updates.
func handleUpdateCategory(tagger server.Tagger, categoriesStore store.CategoriesStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		var req CategoryUpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}
		if req.ColorCode != nil && !tagging.ValidColor(*req.ColorCode) {
			respondWithError(w, http.StatusBadRequest, "color_code must look like #rrggbb")
			return
		}

		user, clientIP := actor(r)
		var c *model.Category
		if req.Name != nil {
			c, err = tagger.RenameCategory(id, *req.Name)
			auditor.Log(audit.CategoryEvent{
				User: user, ClientIP: clientIP, Operation: audit.OpRename, CategoryID: id, Name: strings.TrimSpace(*req.Name),
				Success: err == nil, ErrorMessage: errorMessage(err),
			})
			if err != nil {
				respondWithErr(w, err)
				return
			}
		}

		update := store.CategoryUpdate{
			ColorCode:    req.ColorCode,
			DisplayOrder: req.DisplayOrder,
			Description:  req.Description,
			IsActive:     req.IsActive,
		}
		if update != (store.CategoryUpdate{}) {
			c, err = categoriesStore.UpdateCategory(id, update)
			auditor.Log(audit.CategoryEvent{
				User: user, ClientIP: clientIP, Operation: audit.OpUpdate, CategoryID: id,
				Success: err == nil, ErrorMessage: errorMessage(err),
			})
			if err != nil {
				respondWithErr(w, err)
				return
			}
		}

		if c == nil {
			if c, err = categoriesStore.GetCategory(id); err != nil {
				respondWithErr(w, err)
				return
			}
		}
		respondWithJSON(w, http.StatusOK, c)
	}
}

func handleDeleteCategory(tagger server.Tagger, auditor *audit.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}

		reassigned, err := tagger.DeleteCategory(id)
		user, clientIP := actor(r)
		auditor.Log(audit.CategoryEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpDelete, CategoryID: id, Reassigned: len(reassigned),
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if reassigned == nil {
			reassigned = []uint{}
		}
		log.Info("category deleted via api", zap.Uint("category_id", id), zap.String("user", user))
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"reassigned_image_ids": reassigned})
	}
}

func handleGetDefaultCategory(tagger server.Tagger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := tagger.DefaultCategory()
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, c)
	}
}

func handleSetDefaultCategory(tagger server.Tagger, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}

		err = tagger.SetDefaultCategory(id)
		user, clientIP := actor(r)
		auditor.Log(audit.CategoryEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpDefault, CategoryID: id,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
