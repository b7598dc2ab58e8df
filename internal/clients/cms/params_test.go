package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func Test_SearchParameters_AlwaysSetsPageLimitStatus(t *testing.T) {

	params := SearchParameters{Page: 3, PerPage: 24}.ToURLParams()

	assert.Equal(t, "3", params.Get("page"))
	assert.Equal(t, "24", params.Get("limit"))
	assert.Equal(t, "published", params.Get("status"))
}

func Test_SearchParameters_ArrayFilters_FirstElementWins(t *testing.T) {

	params := SearchParameters{
		Page:       1,
		PerPage:    10,
		Categories: []string{"cat-a", "cat-b", "cat-c"},
		JobTypes:   []string{"full-time", "contract"},
	}.ToURLParams()

	assert.Equal(t, "cat-a", params.Get("job_category"))
	assert.Equal(t, "full-time", params.Get("job_type"))
	assert.Len(t, params["job_category"], 1)
}

func Test_SearchParameters_ExplicitSalaryBeatsBucket(t *testing.T) {

	params := SearchParameters{
		Page:         1,
		PerPage:      10,
		SalaryMin:    int64Ptr(2_500_000),
		SalaryMax:    int64Ptr(5_000_000),
		SalaryBucket: Bucket7to9,
	}.ToURLParams()

	assert.Equal(t, "2500000", params.Get("job_salary_min"))
	assert.Equal(t, "5000000", params.Get("job_salary_max"))
}

func Test_SearchParameters_ExplicitMinOnly_SkipsBucket(t *testing.T) {

	params := SearchParameters{
		Page:         1,
		PerPage:      10,
		SalaryMin:    int64Ptr(2_000_000),
		SalaryBucket: Bucket7to9,
	}.ToURLParams()

	assert.Equal(t, "2000000", params.Get("job_salary_min"))
	assert.Empty(t, params.Get("job_salary_max"))
}

func Test_SearchParameters_BucketTranslation(t *testing.T) {

	tests := []struct {
		bucket      SalaryBucket
		expectedMin string
		expectedMax string
	}{
		{Bucket1to3, "1000000", "3000000"},
		{Bucket4to6, "4000000", "6000000"},
		{Bucket7to9, "7000000", "9000000"},
		{Bucket10Plus, "10000000", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			params := SearchParameters{Page: 1, PerPage: 10, SalaryBucket: tt.bucket}.ToURLParams()

			assert.Equal(t, tt.expectedMin, params.Get("job_salary_min"))
			assert.Equal(t, tt.expectedMax, params.Get("job_salary_max"))
		})
	}
}

func Test_SearchParameters_OptionalFieldsOmittedWhenEmpty(t *testing.T) {

	params := SearchParameters{Page: 1, PerPage: 10}.ToURLParams()

	for _, key := range []string{"search", "location", "job_province", "job_regency",
		"job_category", "job_type", "job_experience", "job_education", "job_tag",
		"job_work_policy", "job_salary_min", "job_salary_max", "sort"} {
		_, present := params[key]
		assert.False(t, present, "unexpected parameter %v", key)
	}
}

func Test_SearchParameters_Validate(t *testing.T) {

	assert.NoError(t, SearchParameters{Page: 1, PerPage: 100}.Validate())

	assert.Error(t, SearchParameters{Page: 0, PerPage: 10}.Validate())
	assert.Error(t, SearchParameters{Page: 1, PerPage: 0}.Validate())
	assert.Error(t, SearchParameters{Page: 1, PerPage: 101}.Validate())
	assert.Error(t, SearchParameters{Page: 1, PerPage: 10, SalaryBucket: "2-5"}.Validate())
}
