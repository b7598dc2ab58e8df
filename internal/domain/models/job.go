package models

import "time"

// Job is the flattened, denormalized representation served to the UI layer.
// It is built once from a CMS job post and never mutated afterwards.
type Job struct {
	ID             string
	Slug           string
	Title          string
	Content        string
	CompanyName    string
	Category       string
	Categories     []string
	Province       string
	City           string
	EmploymentType string
	Education      string
	Experience     string
	Tag            string
	Salary         string
	WorkPolicy     string
	ApplyLink      string
	SEOTitle       string
	SEODescription string
	PublishedAt    time.Time
}

type JobsPage struct {
	Jobs        []Job
	CurrentPage int
	TotalPages  int
	TotalJobs   int
	HasMore     bool
}
