package models

import "time"

// request
type CreateProfileRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProfileRequest struct {
	DisplayName string  `json:"display_name"`
	Description *string `json:"description"`
}

// response
type AccountInfoResponse struct {
	ExternalID string   `json:"external_id"`
	Email      string   `json:"email,omitempty"`
	Username   string   `json:"username,omitempty"`
	HasProfile bool     `json:"has_profile"`
	Profile    *Profile `json:"profile,omitempty"`
}

type DeleteAccountResponse struct {
	Message    string    `json:"message"`
	ExternalID string    `json:"external_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

type UploadPictureResponse struct {
	PictureURL string `json:"picture_url"`
}
