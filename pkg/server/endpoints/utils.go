package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/backup"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/identity"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/storage"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/tagging"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, storage.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateSlug), errors.Is(err, store.ErrAlreadyExists),
		errors.Is(err, tagging.ErrDefaultCategory), errors.Is(err, tagging.ErrNoDefaultCategory):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, tagging.ErrInvalidName),
		errors.Is(err, storage.ErrInvalidName), errors.Is(err, backup.ErrInvalidArchive):
		return http.StatusBadRequest
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingest.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingest.ErrStorage):
		return http.StatusServiceUnavailable
	case errors.Is(err, authenticator.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondWithErr writes err with the status its kind maps to. Internal
// errors are not echoed to the client.
func respondWithErr(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		respondWithError(w, code, "internal server error")
		return
	}
	respondWithError(w, code, err.Error())
}

// decodeJSON reads a JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", store.ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	return nil
}

// pathID parses the named route variable as a positive id.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", store.ErrInvalidInput, name, raw)
	}
	return uint(id), nil
}

// actor returns the admin username and client address of r for auditing.
func actor(r *http.Request) (string, string) {
	ip := identity.ParseIP(r.RemoteAddr)
	ipStr := ""
	if ip != nil {
		ipStr = ip.String()
	}
	if id, ok := identity.Get(r.Context()); ok {
		if id.RemoteIP != nil {
			ipStr = id.RemoteIP.String()
		}
		return id.Username, ipStr
	}
	return "", ipStr
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
