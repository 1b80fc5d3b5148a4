package rest

import (
	"github.com/gin-gonic/gin"
)

// Response barcha javoblar uchun umumiy ko'rinish
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SuccessResponse muvaffaqiyatli javob
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// ErrorResponse xato javobi
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "fail",
		Message: message,
	})
}

// ValidationResponse maydon xatolari bilan javob
func ValidationResponse(c *gin.Context, statusCode int, errors map[string]string) {
	c.JSON(statusCode, Response{
		Status:  "fail",
		Message: "Lütfen hatalı alanları düzeltin",
		Errors:  errors,
	})
}
