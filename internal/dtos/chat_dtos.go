package dtos

type ChatRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
