package model

const (
	// RatingMin and RatingMax bound a review rating.
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	BookID  int32  `json:"book_id"`
	UserID  int32  `json:"user_id"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`

	// Embedded summaries, populated on read paths.
	User *UserSummary `json:"user,omitempty"`
	Book *BookSummary `json:"book,omitempty"`
}

type FindReview struct {
	ID     *int32 `json:"id"`
	BookID *int32 `json:"book_id"`
	UserID *int32 `json:"user_id"`

	Skip *int
	Take *int
}

type ReviewCreateRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type ReviewUpdateRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

type ReviewList struct {
	Reviews []*Review `json:"reviews"`
	Total   int       `json:"total"`
}
