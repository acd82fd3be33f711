package event

import (
	"time"

	"github.com/S6-InstaClone/AccountService/internal/models"
)

// AccountDeletionQueue is consumed by downstream services that must run
// their own cleanup after an account is erased.
const AccountDeletionQueue string = "account_deletion_events"

// AccountDeletionEvent notifies consumers that an account was deleted.
// Username and Email are best-effort: they come from the caller's identity
// claims or the profile that was just removed, and may be absent.
type AccountDeletionEvent struct {
	ID         string                `json:"id"`
	ExternalID string                `json:"external_id"`
	Username   *string               `json:"username"`
	Email      *string               `json:"email"`
	DeletedAt  time.Time             `json:"deleted_at"`
	Reason     models.DeletionReason `json:"reason"`
}
