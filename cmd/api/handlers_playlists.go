package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
)

func (api *API) createPlaylist(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	playlist, err := api.engagement.CreatePlaylist(c.Request.Context(), userID(c), req.Name, req.Description)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

func (api *API) getPlaylist(c *gin.Context) {
	playlistID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	playlist, err := api.engagement.GetPlaylist(c.Request.Context(), playlistID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

func (api *API) channelPlaylists(c *gin.Context) {
	channelID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	playlists, err := api.engagement.UserPlaylists(c.Request.Context(), channelID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

func (api *API) updatePlaylist(c *gin.Context) {
	playlistID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	playlist, err := api.engagement.UpdatePlaylist(c.Request.Context(), userID(c), playlistID, req.Name, req.Description)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

func (api *API) deletePlaylist(c *gin.Context) {
	playlistID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	if err := api.engagement.DeletePlaylist(c.Request.Context(), userID(c), playlistID); err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}

func (api *API) addPlaylistVideos(c *gin.Context) {
	playlistID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	var req struct {
		VideoIDs []string `json:"video_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	if err := validIDs(req.VideoIDs); err != nil {
		api.fail(c, err)
		return
	}

	playlist, err := api.engagement.AddVideos(c.Request.Context(), userID(c), playlistID, req.VideoIDs)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

func (api *API) removePlaylistVideos(c *gin.Context) {
	playlistID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	var req struct {
		VideoIDs []string `json:"video_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	if err := validIDs(req.VideoIDs); err != nil {
		api.fail(c, err)
		return
	}

	playlist, err := api.engagement.RemoveVideos(c.Request.Context(), userID(c), playlistID, req.VideoIDs)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}
