package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/domain/models"
)

// searchParamsFromQuery maps UI query parameters onto the typed filter set.
// Comma-separated multi-value params are split; only the first value reaches
// the CMS (see cms.SearchParameters).
func searchParamsFromQuery(r *http.Request) cms.SearchParameters {

	q := r.URL.Query()

	params := cms.SearchParameters{
		Search:       q.Get("search"),
		Location:     q.Get("location"),
		Province:     q.Get("province"),
		Regency:      q.Get("regency"),
		Categories:   splitParam(q.Get("categories")),
		JobTypes:     splitParam(q.Get("job_types")),
		Experiences:  splitParam(q.Get("experiences")),
		Educations:   splitParam(q.Get("educations")),
		Tags:         splitParam(q.Get("tags")),
		WorkPolicies: splitParam(q.Get("work_policies")),
		SalaryBucket: cms.SalaryBucket(q.Get("salaries")),
		SortBy:       q.Get("sort"),
	}

	if value, err := strconv.ParseInt(q.Get("salary_min"), 10, 64); err == nil {
		params.SalaryMin = &value
	}
	if value, err := strconv.ParseInt(q.Get("salary_max"), 10, 64); err == nil {
		params.SalaryMax = &value
	}

	return params
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := intQueryParam(r, "page", 1)
	perPage := intQueryParam(r, "limit", 24)

	jobsPage, err := s.jobs.GetJobs(r.Context(), searchParamsFromQuery(r), page, perPage)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, jobsPage)
}

func (s *Server) handleJobDetail(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := r.URL.Query().Get("slug")
	id := r.URL.Query().Get("id")
	if slug == "" && id == "" {
		http.Error(w, "slug or id is required", http.StatusBadRequest)
		return
	}

	var job *models.Job
	var err error

	if slug != "" {
		job, err = s.jobs.GetJobBySlug(r.Context(), slug)
	} else {
		job, err = s.jobs.GetJobByID(r.Context(), id)
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if job == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleRelatedJobs(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	limit := intQueryParam(r, "limit", 6)

	related, err := s.jobs.GetRelatedJobs(r.Context(), id, limit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, related)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.filters.GetFiltersData(r.Context()))
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
