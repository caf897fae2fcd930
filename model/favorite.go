package model

type Favorite struct {
	UserID    int32 `json:"user_id"`
	BookID    int32 `json:"book_id"`
	CreatedTs int64 `json:"created_ts"`

	Book *BookSummary `json:"book,omitempty"`
}

type FindFavorite struct {
	UserID *int32 `json:"user_id"`
	BookID *int32 `json:"book_id"`

	Skip *int
	Take *int
}
