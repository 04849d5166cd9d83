package model

type AddAdminRequest struct {
	UserID string `json:"user_id"`
}

type AddAdminResponse struct{}

type RemoveAdminRequest struct {
	UserID string `json:"user_id"`
}

type RemoveAdminResponse struct{}

type PausePlatformRequest struct{}

type PausePlatformResponse struct{}

type UnpausePlatformRequest struct{}

type UnpausePlatformResponse struct{}
