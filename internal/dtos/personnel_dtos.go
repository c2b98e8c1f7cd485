package dtos

type CreatePersonRequest struct {
	FullName  string `json:"full_name" validate:"required,max=200"`
	RoleTitle string `json:"role_title" validate:"max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
}

type UpdatePersonRequest struct {
	FullName  string `json:"full_name" validate:"required,max=200"`
	RoleTitle string `json:"role_title" validate:"max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
	IsActive  bool   `json:"is_active"`
}
