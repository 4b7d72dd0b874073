package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouteRegistrar is implemented by the handlers of this package.
type RouteRegistrar interface {
	RegisterRoutes(router gin.IRouter)
}

// NewRouter builds the gin engine with the service middleware, the given handlers and the
// /metrics endpoint.
func NewRouter(log *logrus.Logger, metrics *Metrics, handlers ...RouteRegistrar) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log), metrics.Middleware())

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	router.GET("/metrics", metrics.Handler())

	router.NoRoute(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "Route not found")
	})
	return router
}
