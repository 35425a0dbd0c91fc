package endpoints

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/backup"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

func TestHandleCreateBackup(t *testing.T) {
	backups := new(MockBackups)
	backups.On("Create", mock.Anything, model.BackupManual).
		Return(&model.Backup{ID: 1, Filename: "backup_20261015_120000.zip", Type: model.BackupManual, Status: model.BackupSuccess}, nil)

	w := httptest.NewRecorder()
	handleCreateBackup(backups, nil, zap.NewNop())(w, httptest.NewRequest("POST", "/admin/backups", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "backup_20261015_120000.zip")
	backups.AssertExpectations(t)
}

func TestHandleDownloadBackup(t *testing.T) {
	t.Run("streams the archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "backup_20261015_120000.zip")
		require.NoError(t, os.WriteFile(path, []byte("PK archive"), 0o600))
		backups := new(MockBackups)
		backups.On("Path", uint(1)).Return(path, nil)

		req := withID(httptest.NewRequest("GET", "/admin/backups/1/download", nil), "1")
		w := httptest.NewRecorder()
		handleDownloadBackup(backups)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "backup_20261015_120000.zip")
		assert.Equal(t, "PK archive", w.Body.String())
	})

	t.Run("returns 404 for an unknown backup", func(t *testing.T) {
		backups := new(MockBackups)
		backups.On("Path", uint(2)).Return("", store.ErrNotFound)

		req := withID(httptest.NewRequest("GET", "/admin/backups/2/download", nil), "2")
		w := httptest.NewRecorder()
		handleDownloadBackup(backups)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleRestoreBackup(t *testing.T) {
	archiveRequest := func(t *testing.T) *http.Request {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("archive", "backup_20261001_080000.zip")
		require.NoError(t, err)
		_, err = fw.Write([]byte("PK archive"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		req := httptest.NewRequest("POST", "/admin/backups/restore", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	t.Run("restores and reports the safety backup", func(t *testing.T) {
		backups := new(MockBackups)
		backups.On("Restore", mock.Anything, mock.AnythingOfType("string")).
			Return(&model.Backup{ID: 9, Filename: "backup_20261015_120001.zip", Type: model.BackupAutomatic}, nil)

		w := httptest.NewRecorder()
		handleRestoreBackup(backups, nil, zap.NewNop())(w, archiveRequest(t))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"restored":"backup_20261001_080000.zip"`)
		assert.Contains(t, w.Body.String(), "backup_20261015_120001.zip")
		backups.AssertExpectations(t)
	})

	t.Run("returns 400 for an invalid archive", func(t *testing.T) {
		backups := new(MockBackups)
		backups.On("Restore", mock.Anything, mock.Anything).Return(nil, backup.ErrInvalidArchive)

		w := httptest.NewRecorder()
		handleRestoreBackup(backups, nil, zap.NewNop())(w, archiveRequest(t))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires an archive", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/admin/backups/restore", nil)
		w := httptest.NewRecorder()
		handleRestoreBackup(new(MockBackups), nil, zap.NewNop())(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
