package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aditya-4747/VideoStreamAPI/internal/middleware"
)

func setupRouter(api *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(api.log))
	router.MaxMultipartMemory = api.cfg.Server.MaxUploadSize

	router.GET("/health", api.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(api.cfg.RateLimit.RequestsPerSecond, api.cfg.RateLimit.Burst)

	v1 := router.Group("/api/v1")
	// Resolve the caller first so the limiter keys on the user ID when
	// a valid token is presented, and on the client IP otherwise.
	v1.Use(middleware.OptionalAuth(api.tokens))
	v1.Use(middleware.RateLimit(limiter))
	{
		users := v1.Group("/users")
		{
			users.POST("/register", api.register)
			users.POST("/login", api.login)
			users.POST("/refresh-token", api.refreshToken)
			users.POST("/logout", middleware.Auth(api.tokens), api.logout)
			users.GET("/me", middleware.Auth(api.tokens), api.currentUser)
		}

		videos := v1.Group("/videos")
		{
			videos.GET("", api.searchVideos)
			videos.POST("", middleware.Auth(api.tokens), api.publishVideo)
			videos.GET("/:id", api.getVideo)
			videos.PATCH("/:id", middleware.Auth(api.tokens), api.updateVideoDetails)
			videos.PATCH("/:id/thumbnail", middleware.Auth(api.tokens), api.updateThumbnail)
			videos.POST("/:id/toggle-publish", middleware.Auth(api.tokens), api.togglePublishStatus)
			videos.DELETE("/:id", middleware.Auth(api.tokens), api.deleteVideo)

			videos.GET("/:id/comments", api.videoComments)
			videos.POST("/:id/comments", middleware.Auth(api.tokens), api.addComment)
		}

		comments := v1.Group("/comments", middleware.Auth(api.tokens))
		{
			comments.PATCH("/:id", api.updateComment)
			comments.DELETE("/:id", api.removeComment)
		}

		subscriptions := v1.Group("/subscriptions", middleware.Auth(api.tokens))
		{
			subscriptions.GET("", api.mySubscriptions)
			subscriptions.POST("/:channelId/toggle", api.toggleSubscription)
		}

		likes := v1.Group("/likes")
		{
			likes.POST("/videos/:id/toggle", middleware.Auth(api.tokens), api.toggleVideoLike)
			likes.POST("/comments/:id/toggle", middleware.Auth(api.tokens), api.toggleCommentLike)
			likes.GET("/videos", middleware.Auth(api.tokens), api.likedVideos)
			likes.GET("/count/:targetId", api.likeCount)
		}

		channels := v1.Group("/channels")
		{
			channels.GET("/:id/stats", api.channelStats)
			channels.GET("/:id/videos", api.channelVideos)
			channels.GET("/:id/subscribers", api.channelSubscribers)
			channels.GET("/:id/playlists", api.channelPlaylists)
		}

		playlists := v1.Group("/playlists")
		{
			playlists.GET("/:id", api.getPlaylist)
			playlists.POST("", middleware.Auth(api.tokens), api.createPlaylist)
			playlists.PATCH("/:id", middleware.Auth(api.tokens), api.updatePlaylist)
			playlists.DELETE("/:id", middleware.Auth(api.tokens), api.deletePlaylist)
			playlists.POST("/:id/videos", middleware.Auth(api.tokens), api.addPlaylistVideos)
			playlists.DELETE("/:id/videos", middleware.Auth(api.tokens), api.removePlaylistVideos)
		}
	}

	return router
}

func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.repo.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
