package model

type User struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
	Name          string `json:"name"`
	Role          string `json:"role"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}
