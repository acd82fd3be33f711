package models

// DefaultProfilePicture is the sentinel picture URL assigned at profile
// creation. A profile still carrying it has never uploaded a picture, so
// there is nothing to remove from object storage on replace or delete.
const DefaultProfilePicture = "default_pr_pic"

// Profile is the stored account profile. ExternalID is the identity
// provider's user id and joins the profile to the authenticated caller.
type Profile struct {
	ProfileID   int64   `db:"profile_id" json:"id"`
	ExternalID  string  `db:"external_id" json:"external_id"`
	Username    string  `db:"username" json:"username"`
	DisplayName string  `db:"display_name" json:"display_name"`
	Description *string `db:"description" json:"description,omitempty"`
	PictureURL  string  `db:"picture_url" json:"picture_url"`
}

// IsDefaultPicture reports whether the profile never had a picture uploaded.
func (p *Profile) IsDefaultPicture() bool {
	return p.PictureURL == DefaultProfilePicture
}

// CallerIdentity carries the identity asserted by the upstream gateway via
// request headers. Only ExternalID is guaranteed; the rest is best-effort.
type CallerIdentity struct {
	ExternalID string
	Email      string
	Username   string
}
