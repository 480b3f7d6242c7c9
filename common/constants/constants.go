package constants

import "time"

const (
	CollectorDir     = ".collector"
	DatabaseFileName = "collector.db"

	DefaultApiUrl      = "http://localhost:8000/api"
	DefaultStorageBase = "https://csce482-collections-bucket.s3.amazonaws.com"
	PlaceholderImage   = "/api/placeholder/300/200"

	UserAgent = "Collector/1.0"

	CsrfCookieName  = "csrftoken"
	CsrfHeaderName  = "X-CSRFToken"
	RequestIdHeader = "X-Request-ID"

	DefaultSearchDebounce = 500 * time.Millisecond
	EventBusQueueSize     = 100

	UnknownCategoryName = "Unknown"
)
