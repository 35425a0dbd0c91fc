package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/contact"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

// RegisterContactEndpoints registers the public contact form endpoint
func RegisterContactEndpoints(s *server.Server) {
	// POST /api/contact - no auth required
	s.Router.HandleFunc("/api/contact", handleContact(s.Contact, s.Log)).Methods("POST")
}

// RegisterMessagesEndpoints registers contact message administration
func RegisterMessagesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/admin/messages").Subrouter()
	r.Use(s.AuthMiddleware.Middleware)

	r.HandleFunc("", handleListMessages(s.ContactsStore)).Methods("GET")
	r.HandleFunc("/{id:[0-9]+}/read", handleMarkMessageRead(s.ContactsStore)).Methods("PATCH")
	r.HandleFunc("/{id:[0-9]+}", handleDeleteMessage(s.ContactsStore)).Methods("DELETE")
}

func handleContact(relay server.ContactRelay, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in contact.Inquiry
		if err := decodeJSON(w, r, &in); err != nil {
			respondWithErr(w, err)
			return
		}

		msg, err := relay.Submit(r.Context(), in)
		if err != nil {
			log.Error("failed to accept contact message", zap.Error(err))
			respondWithErr(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"id":      msg.ID,
			"message": "Thank you for your message. I'll get back to you soon.",
		})
	}
}

func handleListMessages(contactsStore store.ContactsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := contactsStore.ListMessages()
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if messages == nil {
			messages = []model.ContactMessage{}
		}
		respondWithJSON(w, http.StatusOK, messages)
	}
}

func handleMarkMessageRead(contactsStore store.ContactsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if err := contactsStore.MarkMessageRead(id); err != nil {
			respondWithErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDeleteMessage(contactsStore store.ContactsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithErr(w, err)
			return
		}
		if err := contactsStore.DeleteMessage(id); err != nil {
			respondWithErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
