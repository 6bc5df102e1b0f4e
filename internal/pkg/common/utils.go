package common

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizeSessionID 清理外部傳入的會話 ID，空值時產生新的 UUID
func NormalizeSessionID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return GenerateUUID()
	}
	return id
}

// WriteError 將錯誤寫成統一的 JSON 響應
func WriteError(c *gin.Context, err error) {
	ce := AsCustomError(err)
	if ce == nil {
		ce = ErrInternalError
	}
	status := ce.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
	if gin.Mode() == gin.DebugMode && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}
