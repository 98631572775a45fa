package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest accepts both the OAuth2 password form and a JSON body.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=1"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Token       string `json:"token"        validate:"required,len=4,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=40"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

type MessageResponse struct {
	Message string `json:"message"`
}
