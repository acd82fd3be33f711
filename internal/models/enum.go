package models

type DeletionReason string

const (
	DeletionReasonGDPRRequest DeletionReason = "GDPR_USER_REQUEST"
	DeletionReasonAdminAction DeletionReason = "ADMIN_ACTION"
)
