package apitype

// Command is the payload type published on broker topics.
type Command interface{}
