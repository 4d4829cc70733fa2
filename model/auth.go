package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
	ExpireAt    int64  `json:"expireAt"`
}

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type VerifyResult struct {
	OrderId string `json:"orderId"`
}
