package api

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Endpoint string `json:"endpoint"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	ID      Flex   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}
