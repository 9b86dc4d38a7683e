package models

const LoginTypePhone = "phone"

type SendCodeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn"`
}

type LoginResponse struct {
	Token        string    `json:"token"`
	UserInfo     *UserInfo `json:"userInfo"`
	IsFirstLogin bool      `json:"isFirstLogin"`
}

type RefreshTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
