package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
)

// maxRestoreArchive bounds uploaded restore archives.
const maxRestoreArchive = 4 << 30

// RegisterBackupsEndpoints registers backup administration
func RegisterBackupsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/backups").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleListBackups(s.Backups)).Methods("GET")
	r.HandleFunc("", handleCreateBackup(s.Backups, s.Audit, s.Log)).Methods("POST")
	r.HandleFunc("/{id:[0-9]+}/download", handleDownloadBackup(s.Backups)).Methods("GET")
	r.HandleFunc("/restore", handleRestoreBackup(s.Backups, s.Audit, s.Log)).Methods("POST")
}

func handleListBackups(backups server.Backups) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := backups.List()
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if list == nil {
			list = []model.Backup{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleCreateBackup(backups server.Backups, auditor *audit.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := backups.Create(r.Context(), model.BackupManual)
		user, clientIP := actor(r)
		event := audit.BackupEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpCreate,
			Success: err == nil, ErrorMessage: errorMessage(err),
		}
		if b != nil {
			event.Filename = b.Filename
		}
		auditor.Log(event)
		if err != nil {
			log.Error("backup failed", zap.Error(err))
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, b)
	}
}

func handleDownloadBackup(backups server.Backups) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		path, err := backups.Path(id)
		if err != nil {
			respondWithErr(w, err)
			return
		}

		f, err := os.Open(path)
		if err != nil {
			respondWithErr(w, err)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			respondWithErr(w, err)
			return
		}

		name := filepath.Base(path)
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}

func handleRestoreBackup(backups server.Backups, auditor *audit.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRestoreArchive)
		file, header, err := r.FormFile("archive")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, "archive too large")
				return
			}
			respondWithError(w, http.StatusBadRequest, "archive file is required")
			return
		}
		defer file.Close()
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		tmp, err := os.CreateTemp("", "portfolio-restore-*.zip")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		defer os.Remove(tmp.Name())
		_, err = io.Copy(tmp, file)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			respondWithErr(w, err)
			return
		}

		safety, err := backups.Restore(r.Context(), tmp.Name())
		user, clientIP := actor(r)
		auditor.Log(audit.BackupEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpRestore, Filename: header.Filename,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			log.Error("restore failed", zap.String("archive", header.Filename), zap.Error(err))
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"restored":      header.Filename,
			"safety_backup": safety,
		})
	}
}
