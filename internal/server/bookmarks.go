package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/kerjaplus/jobboard/internal/logger"
	log "github.com/sirupsen/logrus"
)

type addBookmarkPayload struct {
	UserID  int64  `json:"user_id" validate:"required"`
	JobID   string `json:"job_id" validate:"required"`
	JobSlug string `json:"job_slug"`
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBookmarks(w, r)
	case http.MethodPost:
		s.addBookmark(w, r)
	case http.MethodDelete:
		s.removeBookmark(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listBookmarks(w http.ResponseWriter, r *http.Request) {

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	limit := 50
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if value := r.URL.Query().Get("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	bookmarks, err := s.bookmarks.GetByUser(r.Context(), userID, limit, offset)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to list bookmarks: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

func (s *Server) addBookmark(w http.ResponseWriter, r *http.Request) {

	var payload addBookmarkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := s.validate.Struct(payload); err != nil {
		http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	bookmark := models.Bookmark{UserID: payload.UserID, JobID: payload.JobID, JobSlug: payload.JobSlug}
	if err := s.bookmarks.Add(r.Context(), bookmark); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to add bookmark: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) removeBookmark(w http.ResponseWriter, r *http.Request) {

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		http.Error(w, "job_id is required", http.StatusBadRequest)
		return
	}

	if err := s.bookmarks.Remove(r.Context(), userID, jobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to remove bookmark: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
