package handler

// TimeFormat is the timestamp layout used in API responses.
const TimeFormat = "2006-01-02T15:04:05Z07:00"
