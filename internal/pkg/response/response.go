package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// 错误类型对应的默认消息
var statusMessages = map[int]string{
	http.StatusBadRequest:          "参数错误",
	http.StatusNotFound:            "资源不存在",
	http.StatusInternalServerError: "服务器内部错误",
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	if message == "" {
		message = statusMessages[status]
	}
	c.JSON(status, ErrorBody{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ServerError 服务器错误
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
