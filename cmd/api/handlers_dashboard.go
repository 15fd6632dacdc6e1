package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aditya-4747/VideoStreamAPI/internal/middleware"
)

func (api *API) channelStats(c *gin.Context) {
	channelID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	viewerID, _ := middleware.GetUserID(c)

	stats, err := api.aggregation.ChannelStats(c.Request.Context(), channelID, viewerID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (api *API) channelVideos(c *gin.Context) {
	channelID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	videos, err := api.aggregation.ChannelVideos(c.Request.Context(), channelID, intQuery(c, "page"), intQuery(c, "limit"))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}
