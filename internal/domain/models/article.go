package models

import "time"

type Article struct {
	ID             string
	Slug           string
	Title          string
	Content        string
	Excerpt        string
	Category       string
	Categories     []string
	SEOTitle       string
	SEODescription string
	PublishedAt    time.Time
}

type ArticlesPage struct {
	Articles    []Article
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasMore     bool
}
