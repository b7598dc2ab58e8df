package models

// FilterOption is one selectable facet value with its job count.
type FilterOption struct {
	ID    string
	Name  string
	Slug  string
	Count int
}

type SalaryRange struct {
	Min int64
	Max int64
}

// FilterData aggregates every facet driving the search UI controls.
// It is fetched as one blob from the CMS and cached with a TTL.
type FilterData struct {
	EmploymentTypes  []FilterOption
	ExperienceLevels []FilterOption
	EducationLevels  []FilterOption
	Categories       []FilterOption
	Tags             []FilterOption
	WorkPolicies     []FilterOption
	Provinces        []FilterOption
	Regencies        []FilterOption
	Skills           []FilterOption
	SalaryRange      SalaryRange
}
