package model

const (
	JobTypeBookAggregate = "BOOK_AGGREGATE"
	JobTypeUserAggregate = "USER_AGGREGATE"
)

// Job is a unit of background work pushed to the worker pool.
type Job struct {
	Type   string
	BookID int32
	UserID int32
}

type JobList []Job

func (j JobList) Len() int {
	return len(j)
}
