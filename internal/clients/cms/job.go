package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type getJobsResponse struct {
	Posts      []JobPost  `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type getJobResponse struct {
	Post JobPost `json:"post"`
}

// Pagination is passed through from the CMS essentially unchanged.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type JobsResult struct {
	Posts      []JobPost
	Pagination Pagination
}

type Named struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// JobPost is the raw job-post shape of the CMS API.
type JobPost struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	SEOTitle        string    `json:"seo_title"`
	SEODescription  string    `json:"seo_description"`
	Company         Named     `json:"company"`
	Categories      []Named   `json:"job_categories"`
	Tags            []Named   `json:"tags"`
	Province        Named     `json:"job_province"`
	Regency         Named     `json:"job_regency"`
	Type            Named     `json:"job_type"`
	EducationLevel  Named     `json:"job_education_level"`
	ExperienceLevel Named     `json:"job_experience_level"`
	SalaryMin       Money     `json:"job_salary_min"`
	SalaryMax       Money     `json:"job_salary_max"`
	SalaryCurrency  string    `json:"job_salary_currency"`
	SalaryPeriod    string    `json:"job_salary_period"`
	IsRemote        bool      `json:"job_is_remote"`
	IsHybrid        bool      `json:"job_is_hybrid"`
	ApplyURL        string    `json:"job_apply_url"`
	ApplyEmail      string    `json:"job_apply_email"`
	PublishedAt     time.Time `json:"published_at"`
}

// Money is a salary bound the CMS serializes inconsistently: absent, null,
// a JSON number, or a numeric string.
type Money struct {
	Value float64
	Valid bool
}

func (m *Money) UnmarshalJSON(b []byte) error {
	str := strings.TrimSpace(string(b))
	if str == "null" || str == `""` {
		return nil
	}

	str = strings.Trim(str, `"`)
	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("parsing salary %s: %v", str, err)
	}

	m.Value = value
	m.Valid = true
	return nil
}

func (c *Client) GetJobs(ctx context.Context, parameters SearchParameters) (*JobsResult, error) {

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	body, err := c.sendRequest(ctx, "job_posts", "/job-posts", parameters.ToURLParams())
	if err != nil {
		return nil, err
	}

	var jobsResponse getJobsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&jobsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &JobsResult{Posts: jobsResponse.Posts, Pagination: jobsResponse.Pagination}, nil
}

func (c *Client) GetJobByID(ctx context.Context, id string) (*JobPost, error) {

	body, err := c.sendRequest(ctx, "job_post", "/job-posts/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var jobResponse getJobResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&jobResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &jobResponse.Post, nil
}

func (c *Client) GetJobBySlug(ctx context.Context, slug string) (*JobPost, error) {

	body, err := c.sendRequest(ctx, "job_post_by_slug", "/job-posts/slug/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}

	var jobResponse getJobResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&jobResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &jobResponse.Post, nil
}
