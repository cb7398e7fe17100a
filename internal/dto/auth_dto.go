package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type IdentityResponse struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionResponse struct {
	State    string            `json:"state"`
	Loading  bool              `json:"loading"`
	Identity *IdentityResponse `json:"identity"`
}
