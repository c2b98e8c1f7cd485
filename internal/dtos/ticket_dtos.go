package dtos

/*
CreateTicketRequest is an owner-raised issue. The property and owner
are resolved from the authenticated token, never from the payload.
*/
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=4000"`
	Priority    string `json:"priority" validate:"omitempty,max=20"`
}

// UpdateTicketRequest is the admin workflow: move status, adjust
// priority, and leave a comment the owner can read back.
type UpdateTicketRequest struct {
	Status       string `json:"status" validate:"required,max=30"`
	Priority     string `json:"priority" validate:"required,max=20"`
	AdminComment string `json:"admin_comment" validate:"max=4000"`
}
