package bookfans

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// ErrorResponse is the body of every non-validation failure.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field" example:"username"`
	Message string `json:"message" example:"must be between 3 and 50 characters"`
}

// ValidationErrorResponse is returned with 422 when a payload fails validation.
type ValidationErrorResponse struct {
	Error  string       `json:"error" example:"validation failed"`
	Fields []FieldError `json:"fields"`
}

// MessageResponse is a plain informational reply.
type MessageResponse struct {
	Message string `json:"message"`
}
