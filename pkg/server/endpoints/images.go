package endpoints

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

// multipartMemory is how much of a multipart form is held in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

// IngestResult reports one file of an upload batch
type IngestResult struct {
	Filename string       `json:"filename"`
	Image    *model.Image `json:"image,omitempty"`
	Error    string       `json:"error,omitempty"`
	Status   int          `json:"status"`
}

// ImageUpdateRequest is the body of PATCH /admin/images/{id}
type ImageUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryIDsRequest is the body of PUT /admin/images/{id}/categories
type CategoryIDsRequest struct {
	CategoryIDs []uint `json:"category_ids"`
}

// RegisterImagesEndpoints registers image administration
func RegisterImagesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/images").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleAdminListImages(s.ImagesStore)).Methods("GET")
	r.HandleFunc("", handleUploadImages(s.Ingest, s.Config.MaxUploadSize, s.Audit, s.Log)).Methods("POST")
	r.HandleFunc("/{id:[0-9]+}", handleAdminGetImage(s.ImagesStore)).Methods("GET")
	r.HandleFunc("/{id:[0-9]+}", handleUpdateImage(s.ImagesStore, s.Audit)).Methods("PATCH")
	r.HandleFunc("/{id:[0-9]+}", handleDeleteImage(s.Ingest, s.Audit, s.Log)).Methods("DELETE")
	r.HandleFunc("/{id:[0-9]+}/categories", handleSetImageCategories(s.Tagger, s.ImagesStore, s.Audit)).Methods("PUT")
	r.HandleFunc("/{id:[0-9]+}/categories/{categoryID:[0-9]+}", handleTagImage(s.Tagger, s.Audit, true)).Methods("POST")
	r.HandleFunc("/{id:[0-9]+}/categories/{categoryID:[0-9]+}", handleTagImage(s.Tagger, s.Audit, false)).Methods("DELETE")
}

func handleAdminListImages(imagesStore store.ImagesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.ImageFilter{CategorySlug: strings.TrimSpace(r.URL.Query().Get("category"))}
		images, err := imagesStore.ListImages(filter)
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if images == nil {
			images = []model.Image{}
		}
		respondWithJSON(w, http.StatusOK, images)
	}
}

func handleAdminGetImage(imagesStore store.ImagesStore) http.HandlerFunc {
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
		respondWithJSON(w, http.StatusOK, img)
	}
}

// handleUploadImages ingests a multipart batch. The response status is 201
// when every file succeeded, 207 when some did, else the first failure's.
func handleUploadImages(ingester server.Ingester, maxUploadSize int64, auditor *audit.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxUploadSize > 0 {
			// room for every part's headers on top of the files themselves
			r.Body = http.MaxBytesReader(w, r.Body, 8*maxUploadSize+multipartMemory)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			respondWithError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		files := r.MultipartForm.File["files[]"]
		if len(files) == 0 {
			files = r.MultipartForm.File["files"]
		}
		if len(files) == 0 {
			respondWithError(w, http.StatusBadRequest, "no files uploaded")
			return
		}

		categories := r.MultipartForm.Value["categories[]"]
		if len(categories) == 0 {
			categories = r.MultipartForm.Value["categories"]
		}
		opts := ingest.Options{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Categories:  categories,
			Inactive:    r.FormValue("is_active") == "false",
		}

		uploads, closers, err := openUploads(files)
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, clientIP := actor(r)
		results := ingester.IngestBatch(r.Context(), uploads, opts)
		out := make([]IngestResult, len(results))
		succeeded, firstFailure := 0, 0
		for i, res := range results {
			out[i] = IngestResult{Filename: res.Filename, Image: res.Image, Status: http.StatusCreated}
			event := audit.ImageEvent{User: user, ClientIP: clientIP, Operation: audit.OpIngest, Filename: res.Filename}
			if res.Err != nil {
				out[i].Status = statusFor(res.Err)
				out[i].Error = res.Err.Error()
				if out[i].Status == http.StatusInternalServerError {
					out[i].Error = "internal server error"
				}
				if firstFailure == 0 {
					firstFailure = out[i].Status
				}
				event.ErrorMessage = res.Err.Error()
			} else {
				succeeded++
				event.ImageID = res.Image.ID
				event.Filename = res.Image.Filename
				event.Success = true
			}
			auditor.Log(event)
		}

		code := http.StatusCreated
		switch {
		case succeeded == 0:
			code = firstFailure
		case succeeded < len(results):
			code = http.StatusMultiStatus
		}
		log.Info("upload batch processed", zap.Int("files", len(results)), zap.Int("succeeded", succeeded))
		respondWithJSON(w, code, map[string]interface{}{"results": out})
	}
}

func openUploads(files []*multipart.FileHeader) ([]ingest.Upload, []multipart.File, error) {
	uploads := make([]ingest.Upload, 0, len(files))
	closers := make([]multipart.File, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, closers, fmt.Errorf("failed to read upload %s: %v", fh.Filename, err)
		}
		closers = append(closers, f)
		uploads = append(uploads, ingest.Upload{Filename: fh.Filename, Body: f})
	}
	return uploads, closers, nil
}

func handleUpdateImage(imagesStore store.ImagesStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		var req ImageUpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}
		if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
			respondWithError(w, http.StatusBadRequest, "title must not be empty")
			return
		}

		img, err := imagesStore.UpdateImage(id, store.ImageUpdate{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			IsActive:    req.IsActive,
		})
		user, clientIP := actor(r)
		auditor.Log(audit.ImageEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpUpdate, ImageID: id,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, img)
	}
}

func handleDeleteImage(ingester server.Ingester, auditor *audit.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}

		img, err := ingester.Remove(r.Context(), id)
		user, clientIP := actor(r)
		event := audit.ImageEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpDelete, ImageID: id,
			Success: err == nil, ErrorMessage: errorMessage(err),
		}
		if img != nil {
			event.Filename = img.Filename
		}
		auditor.Log(event)
		if err != nil {
			log.Warn("failed to delete image", zap.Uint("image_id", id), zap.Error(err))
			respondWithErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSetImageCategories(tagger server.Tagger, imagesStore store.ImagesStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		var req CategoryIDsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}

		err = tagger.SetCategories(id, req.CategoryIDs)
		user, clientIP := actor(r)
		auditor.Log(audit.ImageEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpTag, ImageID: id,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}

		img, err := imagesStore.GetImage(id)
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, img)
	}
}

func handleTagImage(tagger server.Tagger, auditor *audit.Logger, add bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		categoryID, err := pathID(r, "categoryID")
		if err != nil {
			respondWithErr(w, err)
			return
		}

		op := audit.OpTag
		if add {
			err = tagger.AddCategory(id, categoryID)
		} else {
			op = audit.OpUntag
			err = tagger.RemoveCategory(id, categoryID)
		}
		user, clientIP := actor(r)
		auditor.Log(audit.ImageEvent{
			User: user, ClientIP: clientIP, Operation: op, ImageID: id, CategoryID: categoryID,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
