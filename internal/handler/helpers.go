package handler

import "github.com/gin-gonic/gin"

// ErrorResponse is the standard error body returned by all endpoints
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// currentUserID resolves the acting user from the X-User-ID header.
// Authentication is not wired yet; the fixed default stands in for it.
func currentUserID(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return userID
	}

	return "test-user-id"
}
