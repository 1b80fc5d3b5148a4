// Package rest storefront uchun JSON API.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/metrics"
)

// RouterDeps router uchun kerakli handlerlar
type RouterDeps struct {
	Menu           *MenuHandler
	Contact        *ContactHandler
	Metrics        *metrics.Recorder
	EditorPassword string
	Logger         *logrus.Logger
}

// NewRouter barcha marshrutlar bilan gin engine
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := router.Group("/api")
	deps.Menu.RegisterRoutes(api, EditorGate(deps.EditorPassword, deps.Logger))
	deps.Contact.RegisterRoutes(api)

	return router
}
