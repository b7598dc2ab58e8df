package cms

import (
	"fmt"
	"net/url"
	"strconv"
)

// SalaryBucket is the legacy coarse salary filter the search UI still sends.
// Codes are IDR-million ranges.
type SalaryBucket string

const (
	Bucket1to3   SalaryBucket = "1-3"
	Bucket4to6   SalaryBucket = "4-6"
	Bucket7to9   SalaryBucket = "7-9"
	Bucket10Plus SalaryBucket = "10+"
)

type salaryRange struct {
	min int64
	max int64
}

var salaryBuckets = map[SalaryBucket]salaryRange{
	Bucket1to3:   {min: 1_000_000, max: 3_000_000},
	Bucket4to6:   {min: 4_000_000, max: 6_000_000},
	Bucket7to9:   {min: 7_000_000, max: 9_000_000},
	Bucket10Plus: {min: 10_000_000},
}

// SearchParameters is the typed filter set for job-post queries. The CMS
// accepts a single value per filter dimension, so slice fields contribute
// only their first element to the query.
type SearchParameters struct {
	Search       string
	Location     string
	Province     string
	Regency      string
	Categories   []string
	JobTypes     []string
	Experiences  []string
	Educations   []string
	Tags         []string
	WorkPolicies []string
	SalaryMin    *int64
	SalaryMax    *int64
	SalaryBucket SalaryBucket
	SortBy       string
	Page         int
	PerPage      int
}

func (s SearchParameters) Validate() error {

	if s.Page < 1 {
		return fmt.Errorf("page must be positive")
	}

	if s.PerPage < 1 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 1 and 100")
	}

	if s.SalaryBucket != "" {
		if _, ok := salaryBuckets[s.SalaryBucket]; !ok {
			return fmt.Errorf("unknown salary bucket: %v", s.SalaryBucket)
		}
	}

	return nil
}

func (s SearchParameters) ToURLParams() url.Values {

	params := url.Values{}
	params.Set("page", strconv.Itoa(s.Page))
	params.Set("limit", strconv.Itoa(s.PerPage))
	params.Set("status", "published")

	if s.Search != "" {
		params.Set("search", s.Search)
	}

	if s.Location != "" {
		params.Set("location", s.Location)
	}

	if s.Province != "" {
		params.Set("job_province", s.Province)
	}

	if s.Regency != "" {
		params.Set("job_regency", s.Regency)
	}

	setFirst(params, "job_category", s.Categories)
	setFirst(params, "job_type", s.JobTypes)
	setFirst(params, "job_experience", s.Experiences)
	setFirst(params, "job_education", s.Educations)
	setFirst(params, "job_tag", s.Tags)
	setFirst(params, "job_work_policy", s.WorkPolicies)

	s.setSalaryParams(params)

	if s.SortBy != "" {
		params.Set("sort", s.SortBy)
	}

	return params
}

// Explicit bounds win; the bucket code is consulted only when both are absent.
func (s SearchParameters) setSalaryParams(params url.Values) {

	if s.SalaryMin != nil {
		params.Set("job_salary_min", strconv.FormatInt(*s.SalaryMin, 10))
	}
	if s.SalaryMax != nil {
		params.Set("job_salary_max", strconv.FormatInt(*s.SalaryMax, 10))
	}

	if s.SalaryMin != nil || s.SalaryMax != nil || s.SalaryBucket == "" {
		return
	}

	bucket, ok := salaryBuckets[s.SalaryBucket]
	if !ok {
		return
	}

	params.Set("job_salary_min", strconv.FormatInt(bucket.min, 10))
	if bucket.max != 0 {
		params.Set("job_salary_max", strconv.FormatInt(bucket.max, 10))
	}
}

func setFirst(params url.Values, key string, values []string) {
	for _, value := range values {
		if value != "" {
			params.Set(key, value)
			return
		}
	}
}
