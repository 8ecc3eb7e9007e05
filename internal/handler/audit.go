package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meditwin/backend/internal/audit"
)

const defaultAuditLogLimit = 50

// AuditLogsResponse wraps the audit trail returned to the user
type AuditLogsResponse struct {
	Success bool             `json:"success"`
	Logs    []audit.AuditLog `json:"logs"`
}

// AuditHandler exposes a user's own audit trail
type AuditHandler struct {
	audit  *audit.Logger
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditLogger *audit.Logger, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		audit:  auditLogger,
		logger: logger,
	}
}

// List handles GET /api/audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	userID := currentUserID(c)

	limit := defaultAuditLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "INVALID_LIMIT",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	logs, err := h.audit.GetAuditLogs(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to fetch audit logs",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "AUDIT_FETCH_FAILED",
			Message: "Failed to fetch audit logs",
		})
		return
	}

	if logs == nil {
		logs = []audit.AuditLog{}
	}

	c.JSON(http.StatusOK, AuditLogsResponse{
		Success: true,
		Logs:    logs,
	})
}
