package request

type AddBookRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	Author      string `json:"author" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}
