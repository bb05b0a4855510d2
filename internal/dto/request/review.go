package request

// Rating bounds are checked by the review service after the book lookup.
type AddReviewRequest struct {
	BookID  string `json:"bookId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=5000"`
}
