package server

import (
	"encoding/json"
	"net/http"

	"github.com/kerjaplus/jobboard/internal/events"
	log "github.com/sirupsen/logrus"
)

type webhookPayload struct {
	Type string `json:"type" validate:"required,oneof=job post page filters"`
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// handleCmsWebhook receives change notifications from the CMS admin panel and
// fans them out on the event bus (cache invalidation, sitemap regeneration).
func (s *Server) handleCmsWebhook(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := s.validate.Struct(payload); err != nil {
		http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.bus.Publish(events.ContentUpdatedTopic, events.ContentUpdated{
		Type: payload.Type,
		ID:   payload.ID,
		Slug: payload.Slug,
	})

	log.Infof("cms webhook received: %v %v", payload.Type, payload.ID)
	w.WriteHeader(http.StatusAccepted)
}
