package handler

// --- Request types ---

type registerRequest struct {
	Login     string `json:"login" validate:"required,max=64,excludes=:"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// updateAccountRequest is a partial update: omitted fields stay unchanged.
type updateAccountRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// --- Response types ---

type accountResponse struct {
	Login     string   `json:"login"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

type rolesResponse struct {
	Login string   `json:"login"`
	Roles []string `json:"roles"`
}
