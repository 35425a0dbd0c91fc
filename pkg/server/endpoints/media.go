package endpoints

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
)

// RegisterMediaEndpoints serves stored files. Only the local driver serves
// files itself; object stores are fronted directly.
func RegisterMediaEndpoints(s *server.Server) {
	local, ok := s.Storage.(*storage.Local)
	if !ok {
		return
	}
	s.Router.HandleFunc("/media/{name}", handleMedia(local)).Methods("GET", "HEAD")
}

func handleMedia(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		if err := storage.ValidateName(name); err != nil {
			respondWithErr(w, err)
			return
		}

		rc, err := st.Open(r.Context(), name)
		if err != nil {
			if errors.Is(err, storage.ErrNotExist) {
				respondWithError(w, http.StatusNotFound, "file not found")
				return
			}
			respondWithErr(w, err)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", storage.ContentType(name))
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if rs, ok := rc.(io.ReadSeeker); ok {
			http.ServeContent(w, r, name, time.Time{}, rs)
			return
		}
		if r.Method != http.MethodHead {
			_, _ = io.Copy(w, rc)
		}
	}
}
