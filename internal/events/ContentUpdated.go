package events

var ContentUpdatedTopic = "ContentUpdatedEvent"

const (
	ContentTypeJob     = "job"
	ContentTypePost    = "post"
	ContentTypePage    = "page"
	ContentTypeFilters = "filters"
)

type ContentUpdated struct {
	Type string
	ID   string
	Slug string
}
