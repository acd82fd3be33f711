package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/S6-InstaClone/AccountService/internal/models"
	"github.com/S6-InstaClone/AccountService/internal/services"
	"github.com/S6-InstaClone/AccountService/pkg/utils"
)

type ProfileHandler struct {
	ProfileService services.IProfileService
}

func NewProfileHandler(profileService services.IProfileService) *ProfileHandler {
	return &ProfileHandler{
		ProfileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.Engine) {
	publicGr := router.Group("/account/api/v1")
	publicGr.GET("/ping", h.Ping)
	publicGr.GET("/profiles", h.GetAllProfiles)
	publicGr.GET("/profiles/search", h.SearchProfiles)
	publicGr.GET("/profiles/:id", h.GetProfileByID)

	protectedGr := router.Group("/account/protected/api/v1")
	protectedGr.POST("/profiles", h.CreateProfile)
	protectedGr.PUT("/profiles/:id", h.UpdateProfile)
	protectedGr.DELETE("/profiles/:id", h.DeleteProfile)
	protectedGr.POST("/profiles/:id/picture", h.UploadPicture)
}

func (h *ProfileHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *ProfileHandler) GetAllProfiles(c *gin.Context) {
	profiles, err := h.ProfileService.GetAllProfiles()
	if err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(profiles))
}

func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "profile id must be an integer"))
		return
	}

	profile, err := h.ProfileService.GetProfileByID(profileID)
	if err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(profile))
}

func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	term := c.Query("q")
	profiles, err := h.ProfileService.SearchProfiles(term)
	if err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(profiles))
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	caller := callerIdentity(c)
	if caller.ExternalID == "" {
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", models.ErrUnauthorized.Error()))
		return
	}

	var req models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "invalid request body"))
		return
	}

	profile, err := h.ProfileService.CreateProfile(caller.ExternalID, &req)
	if err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	caller := callerIdentity(c)
	if caller.ExternalID == "" {
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", models.ErrUnauthorized.Error()))
		return
	}

	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "profile id must be an integer"))
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "invalid request body"))
		return
	}

	if req.DisplayName != "" {
		if err := h.ProfileService.UpdateDisplayName(profileID, caller.ExternalID, req.DisplayName); err != nil {
			errorCode, httpStatus := MapErrorToHTTPStatus(err)
			c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
			return
		}
	}
	if req.Description != nil {
		if err := h.ProfileService.UpdateDescription(profileID, caller.ExternalID, req.Description); err != nil {
			errorCode, httpStatus := MapErrorToHTTPStatus(err)
			c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
			return
		}
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	caller := callerIdentity(c)
	if caller.ExternalID == "" {
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", models.ErrUnauthorized.Error()))
		return
	}

	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "profile id must be an integer"))
		return
	}

	if err := h.ProfileService.DeleteProfile(c.Request.Context(), profileID, caller.ExternalID); err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	caller := callerIdentity(c)
	if caller.ExternalID == "" {
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", models.ErrUnauthorized.Error()))
		return
	}

	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "profile id must be an integer"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "picture file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "cannot read picture file"))
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_ARGUMENT", "cannot read picture file"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	pictureURL, err := h.ProfileService.UploadPicture(c.Request.Context(), profileID, caller.ExternalID, fileBytes, contentType)
	if err != nil {
		errorCode, httpStatus := MapErrorToHTTPStatus(err)
		c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, publicMessage(err, errorCode)))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(models.UploadPictureResponse{PictureURL: pictureURL}))
}
