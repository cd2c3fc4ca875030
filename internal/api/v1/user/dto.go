package user

// RegisterInput is the signup body. max counts characters; the service also caps the password at 72 bytes.
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
