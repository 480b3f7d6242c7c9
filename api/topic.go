package api

type Topic string

const (
	CategoriesUpdated = Topic("event-categories-updated")
	SessionChanged    = Topic("event-session-changed")
	ShowError         = Topic("event-show-error")
	ShowNotice        = Topic("event-show-notice")
)
