package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the health check endpoint
func RegisterStatusEndpoints(s *server.Server) {
	// GET /status - no auth required
	s.Router.HandleFunc("/status", handleStatus(s.HealthStore)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:   "error",
				Database: "unreachable",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:   "ok",
			Database: "ok",
		})
	}
}
