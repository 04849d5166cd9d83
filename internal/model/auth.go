package model

type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type RefreshToken struct {
	Family  string `json:"family"`
	Counter uint64 `json:"counter"`
}

// WalletLoginToken is the short-lived challenge issued by WalletLogin and
// returned by the client to WalletVerify. Keeping the nonce inside a signed
// token avoids any server-side session state.
type WalletLoginToken struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

type WalletLoginRequest struct {
	Address string `json:"address"`
}

type WalletLoginResponse struct {
	Nonce      string `json:"nonce"`
	LoginToken string `json:"login_token"`
}

type WalletVerifyRequest struct {
	LoginToken string `json:"login_token"`
	Signature  string `json:"signature"`
}

type WalletVerifyResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
