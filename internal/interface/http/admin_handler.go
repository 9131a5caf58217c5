package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	"github.com/oksasatya/marketplace-storefront/pkg/response"
)

type AdminHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.Service, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// SearchUsers backs the admin customer, seller and reseller tables.
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	var q directoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	entries, err := h.Svc.SearchDirectory(c.Request.Context(), q.Q, entity.Role(q.Role), q.Size)
	if err != nil {
		writeError(c, h.Logger, "search users", err)
		return
	}
	response.Success(c, http.StatusOK, entries, "Users fetched", map[string]any{"count": len(entries)})
}
