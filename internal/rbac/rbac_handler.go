package rbac

import (
	"net/http"
	"strings"

	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers a permission question. An empty employee_id means the
// caller.
func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	req.EmployeeID = c.GetString("employee_id")

	var body struct {
		EmployeeID string `json:"employee_id"`
		Resource   string `json:"resource" binding:"required"`
		Action     string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if id := strings.TrimSpace(body.EmployeeID); id != "" {
		req.EmployeeID = id
	}
	req.Resource = strings.TrimSpace(body.Resource)
	req.Action = strings.TrimSpace(body.Action)

	if req.EmployeeID == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "employee_id, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("http enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to evaluate permission", nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	perms, err := h.service.Permissions(c.GetString("employee_id"))
	if err != nil {
		h.logger.Error("http permissions failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load permissions", nil)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}
