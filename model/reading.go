package model

// ReadingState is the state of a book on a user's reading list.
type ReadingState string

const (
	ReadingWant     ReadingState = "WANT_TO_READ"
	ReadingNow      ReadingState = "READING"
	ReadingFinished ReadingState = "FINISHED"
)

func (s ReadingState) Valid() bool {
	switch s {
	case ReadingWant, ReadingNow, ReadingFinished:
		return true
	}
	return false
}

type ReadingStatus struct {
	UserID    int32        `json:"user_id"`
	BookID    int32        `json:"book_id"`
	State     ReadingState `json:"state"`
	UpdatedTs int64        `json:"updated_ts"`

	Book *BookSummary `json:"book,omitempty"`
}

type FindReadingStatus struct {
	UserID *int32        `json:"user_id"`
	BookID *int32        `json:"book_id"`
	State  *ReadingState `json:"state"`

	Skip *int
	Take *int
}

type ReadingUpdateRequest struct {
	State ReadingState `json:"state"`
}
