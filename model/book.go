package model

type Book struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	PublishDate string `json:"publish_date"`
	CoverURL    string `json:"cover_url"`

	Genres []string `json:"genres"`

	// AverageRating and TotalReviews are denormalized,
	// recomputed by the rating worker on review changes.
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// BookSummary is the shape embedded in reviews and favorites.
type BookSummary struct {
	ID            int32   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	CoverURL      string  `json:"cover_url"`
	AverageRating float64 `json:"average_rating"`
}

func (b *Book) Summary() *BookSummary {
	return &BookSummary{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		CoverURL:      b.CoverURL,
		AverageRating: b.AverageRating,
	}
}

type FindBook struct {
	ID    *int32  `json:"id"`
	Title *string `json:"title"`
	ISBN  *string `json:"isbn"`

	// Query matches title or author, case insensitive.
	Query *string
	// Genre filters by genre name.
	Genre *string

	OrderBy *string

	Skip *int
	Take *int
}

type BookCreateRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	Description string   `json:"description"`
	PublishDate string   `json:"publish_date"`
	CoverURL    string   `json:"cover_url"`
	Genres      []string `json:"genres"`
}

type BookUpdateRequest struct {
	Title       *string   `json:"title"`
	Author      *string   `json:"author"`
	ISBN        *string   `json:"isbn"`
	Description *string   `json:"description"`
	PublishDate *string   `json:"publish_date"`
	CoverURL    *string   `json:"cover_url"`
	Genres      *[]string `json:"genres"`
}

// BookList is a paginated page of books plus the overall total,
// so clients can compute page counts.
type BookList struct {
	Books []*Book `json:"books"`
	Total int     `json:"total"`
}
