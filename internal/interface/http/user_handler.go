package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, "get profile", err)
		return
	}
	response.Success(c, http.StatusOK, userEnvelope[profileUser]{User: toProfileUser(u)}, "Profile fetched", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:            req.Name,
		ProfileImage:    req.ProfileImage,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Client:          clientInfo(c),
	})
	if err != nil {
		writeError(c, h.Logger, "update profile", err)
		return
	}
	response.Success(c, http.StatusOK, userEnvelope[profileUser]{User: toProfileUser(u)}, "Profile updated successfully", nil)
}

func (h *UserHandler) UpdateSettings(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Svc.UpdateSettings(c.Request.Context(), uid, application.SettingsInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImage:    req.ProfileImage,
		Client:          clientInfo(c),
	})
	if err != nil {
		writeError(c, h.Logger, "update settings", err)
		return
	}
	response.Success(c, http.StatusOK, userEnvelope[profileUser]{User: toProfileUser(u)}, "Settings updated successfully", nil)
}

func (h *UserHandler) UpsertAddress(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req upsertAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	addr, err := h.Svc.UpsertAddress(c.Request.Context(), uid, *req.Address.toEntity())
	if err != nil {
		writeError(c, h.Logger, "upsert address", err)
		return
	}
	response.Success(c, http.StatusOK, addressEnvelope{Address: addr}, "Address saved successfully", nil)
}

func (h *UserHandler) DeleteAddress(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAddress(c.Request.Context(), uid); err != nil {
		writeError(c, h.Logger, "delete address", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Address deleted successfully", nil)
}
