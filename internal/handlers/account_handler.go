package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/S6-InstaClone/AccountService/internal/models"
	"github.com/S6-InstaClone/AccountService/internal/services"
	"github.com/S6-InstaClone/AccountService/pkg/utils"
)

type AccountHandler struct {
	ProfileService  services.IProfileService
	DeletionService services.IAccountDeletionService
}

func NewAccountHandler(profileService services.IProfileService, deletionService services.IAccountDeletionService) *AccountHandler {
	return &AccountHandler{
		ProfileService:  profileService,
		DeletionService: deletionService,
	}
}

func (h *AccountHandler) RegisterRoutes(router *gin.Engine) {
	accountGr := router.Group("/account/protected/api/v1")
	accountGr.GET("/accounts/me", h.GetMyAccount)
	accountGr.DELETE("/accounts/me", h.DeleteMyAccount)
}

// callerIdentity reads the identity asserted by the upstream gateway. The
// gateway already authenticated the caller; this service only trusts the
// headers it forwards.
func callerIdentity(c *gin.Context) models.CallerIdentity {
	return models.CallerIdentity{
		ExternalID: c.GetHeader("X-User-ID"),
		Email:      c.GetHeader("X-User-Email"),
		Username:   c.GetHeader("X-User-Name"),
	}
}

func (h *AccountHandler) GetMyAccount(c *gin.Context) {
	caller := callerIdentity(c)
	if caller.ExternalID == "" {
		errorResponse := utils.CreateErrorResponse("UNAUTHORIZED", models.ErrUnauthorized.Error())
		c.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	account := models.AccountInfoResponse{
		ExternalID: caller.ExternalID,
		Email:      caller.Email,
		Username:   caller.Username,
	}

	profile, err := h.ProfileService.GetMyProfile(caller.ExternalID)
	if err != nil && !errors.Is(err, models.ErrProfileNotFound) {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}
	if profile != nil {
		account.HasProfile = true
		account.Profile = profile
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(account))
}

// DeleteMyAccount triggers the GDPR deletion workflow. Once the caller is
// identified this always answers 200: downstream failures are logged and
// consumers reconcile on their own.
func (h *AccountHandler) DeleteMyAccount(c *gin.Context) {
	caller := callerIdentity(c)

	result, err := h.DeletionService.DeleteAccount(c.Request.Context(), caller)
	if err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}
