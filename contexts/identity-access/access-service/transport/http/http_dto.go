package httptransport

type ProfileDTO struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type CallerRoleResponse struct {
	Role string `json:"role"`
}

type CallerAdminResponse struct {
	Admin bool `json:"admin"`
}

type AssignRoleRequest struct {
	Role string `json:"role"`
}

type GetProfileResponse struct {
	Item ProfileDTO `json:"item"`
}

type SaveProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type BootstrapInitialAdminRequest struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
