package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"friend-network/backend/internal/network"
)

// BasePath is the root of the network resource
const BasePath = "/api/v1/resources/network"

// Options tunes the router
type Options struct {
	MetricsEnabled bool
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(svc *network.Service, log *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())
	if opts.MetricsEnabled {
		router.Use(metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	h := NewHandler(svc, log)

	router.GET("/", h.Index)
	router.GET("/health", h.Health)

	api := router.Group(BasePath)
	{
		api.GET("", h.ListNetwork)
		api.GET("/:id", h.FriendsOfFriends)
		api.PUT("/:id", h.AddFriend)
		api.DELETE("/:id", h.RemoveFriend)
	}

	return router
}
