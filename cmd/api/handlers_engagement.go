package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

func (api *API) toggleSubscription(c *gin.Context) {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		api.fail(c, err)
		return
	}

	result, err := api.engagement.ToggleSubscription(c.Request.Context(), userID(c), channelID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (api *API) mySubscriptions(c *gin.Context) {
	channels, err := api.engagement.Subscriptions(c.Request.Context(), userID(c))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func (api *API) channelSubscribers(c *gin.Context) {
	channelID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	subscribers, err := api.engagement.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}

func (api *API) toggleVideoLike(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	result, err := api.engagement.ToggleLike(c.Request.Context(), userID(c), models.VideoTarget(videoID))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (api *API) toggleCommentLike(c *gin.Context) {
	commentID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	result, err := api.engagement.ToggleLike(c.Request.Context(), userID(c), models.CommentTarget(commentID))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (api *API) likedVideos(c *gin.Context) {
	videos, err := api.aggregation.LikedVideos(c.Request.Context(), userID(c))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (api *API) likeCount(c *gin.Context) {
	targetID, err := pathID(c, "targetId")
	if err != nil {
		api.fail(c, err)
		return
	}

	count, err := api.aggregation.LikeCount(c.Request.Context(), targetID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
