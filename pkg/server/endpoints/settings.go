package endpoints

import (
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

var settingKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,49}$`)

// SettingRequest is the body of PUT /admin/settings/{key}
type SettingRequest struct {
	Value string `json:"value"`
}

// RegisterSettingsEndpoints registers site settings administration
func RegisterSettingsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/settings").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleListSettings(s.SettingsStore)).Methods("GET")
	r.HandleFunc("/{key}", handlePutSetting(s.SettingsStore, s.Audit)).Methods("PUT")
}

func handleListSettings(settingsStore store.SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := settingsStore.ListSettings()
		if err != nil {
			respondWithErr(w, err)
			return
		}
		out := make(map[string]string, len(settings))
		for _, s := range settings {
			out[s.Key] = s.Value
		}
		respondWithJSON(w, http.StatusOK, out)
	}
}

func handlePutSetting(settingsStore store.SettingsStore, auditor *audit.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["key"]
		if !settingKeyRegex.MatchString(key) {
			respondWithError(w, http.StatusBadRequest, "setting keys are lowercase letters, digits and underscores")
			return
		}
		// the default category is managed through its own endpoint
		if key == model.SettingDefaultCategoryID {
			respondWithError(w, http.StatusConflict, "use PUT /admin/categories/{id}/default")
			return
		}

		var req SettingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}

		err := settingsStore.SetSetting(key, req.Value)
		user, clientIP := actor(r)
		auditor.Log(audit.SiteEvent{
			User: user, ClientIP: clientIP, Operation: audit.OpUpdate, Resource: "setting:" + key,
			Success: err == nil, ErrorMessage: errorMessage(err),
		})
		if err != nil {
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
	}
}
