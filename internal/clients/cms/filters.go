package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

type getFiltersResponse struct {
	Filters FilterData `json:"filters"`
}

type FilterOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type SalaryRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterData is the aggregated facet blob the CMS exposes for the search UI.
type FilterData struct {
	EmploymentTypes  []FilterOption `json:"employment_types"`
	ExperienceLevels []FilterOption `json:"experience_levels"`
	EducationLevels  []FilterOption `json:"education_levels"`
	Categories       []FilterOption `json:"categories"`
	Tags             []FilterOption `json:"tags"`
	WorkPolicies     []FilterOption `json:"work_policies"`
	Provinces        []FilterOption `json:"provinces"`
	Regencies        []FilterOption `json:"regencies"`
	Skills           []FilterOption `json:"skills"`
	SalaryRange      SalaryRange    `json:"salary_range"`
}

func (c *Client) GetFilters(ctx context.Context) (*FilterData, error) {

	body, err := c.sendRequest(ctx, "job_filters", "/job-posts/filters", nil)
	if err != nil {
		return nil, err
	}

	var filtersResponse getFiltersResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&filtersResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &filtersResponse.Filters, nil
}
