package models

import "time"

type Bookmark struct {
	ID        int
	UserID    int64
	JobID     string
	JobSlug   string
	CreatedAt time.Time
}
