package dto

// RegisterRequest defines the data needed to create a local account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest carries local credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries an ID token obtained by the client from Google Sign-In.
type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// ExchangeCodeRequest carries an OAuth authorization code obtained by the client.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RefreshTokenRequest carries the refresh token issued at login.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}
