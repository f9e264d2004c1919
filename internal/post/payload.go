package post

type CreateReq struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Tag     string `json:"tag" validate:"omitempty,max=50"`
}

type UpdateReq struct {
	Title   string `json:"title" validate:"omitempty,max=200"`
	Content string `json:"content" validate:"omitempty"`
	Tag     string `json:"tag" validate:"omitempty,max=50"`
}

type ListFilter struct {
	AuthorEmail string
	Tag         string
	Limit       int
	Offset      int
}
