package rest

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// EditorHeader yozish so'rovlari uchun parol sarlavhasi
const EditorHeader = "X-Editor-Password"

// RequestLogger har bir so'rovni loglash
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		logger.WithFields(logrus.Fields{
			"status_code": c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  time.Since(startTime).Milliseconds(),
		}).Info("Request completed")
	}
}

// EditorGate password bo'sh bo'lsa hamma o'tadi
func EditorGate(password string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.Next()
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader(EditorHeader)), []byte(password)) != 1 {
			logger.WithField("path", c.Request.URL.Path).Warn("Middleware: editor password rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Status: "fail", Message: "Editor password required"})
			return
		}
		c.Next()
	}
}
