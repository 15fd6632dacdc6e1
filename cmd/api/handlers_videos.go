package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aditya-4747/VideoStreamAPI/internal/content"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

func (api *API) publishVideo(c *gin.Context) {
	input := content.PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if raw := c.PostForm("duration"); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil || duration < 0 {
			api.fail(c, apperr.New(apperr.KindValidation, "duration must be a non-negative number"))
			return
		}
		input.Duration = duration
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "video file is required"))
		return
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "thumbnail is required"))
		return
	}

	videoPath, err := api.saveUpload(c, videoFile)
	if err != nil {
		api.fail(c, err)
		return
	}
	defer os.Remove(videoPath)

	thumbPath, err := api.saveUpload(c, thumbFile)
	if err != nil {
		api.fail(c, err)
		return
	}
	defer os.Remove(thumbPath)

	input.VideoPath = videoPath
	input.VideoName = videoFile.Filename
	input.VideoSize = videoFile.Size
	input.ThumbnailPath = thumbPath
	input.ThumbnailName = thumbFile.Filename

	video, err := api.content.PublishVideo(c.Request.Context(), userID(c), input)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

func (api *API) getVideo(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	video, err := api.content.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (api *API) searchVideos(c *gin.Context) {
	filter := models.VideoFilter{
		Query:    c.Query("query"),
		OwnerID:  c.Query("userId"),
		SortBy:   models.SortField(c.Query("sortBy")),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "limit"),
	}
	switch c.Query("sortType") {
	case "1", "asc":
		filter.SortOrder = models.SortAscending
	case "-1", "desc":
		filter.SortOrder = models.SortDescending
	}

	videos, err := api.aggregation.SearchVideos(c.Request.Context(), filter)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (api *API) updateVideoDetails(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	video, err := api.content.UpdateVideoDetails(c.Request.Context(), userID(c), videoID, req.Title, req.Description)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (api *API) updateThumbnail(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "thumbnail is required"))
		return
	}

	thumbPath, err := api.saveUpload(c, thumbFile)
	if err != nil {
		api.fail(c, err)
		return
	}
	defer os.Remove(thumbPath)

	video, err := api.content.UpdateThumbnail(c.Request.Context(), userID(c), videoID, thumbPath, thumbFile.Filename)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (api *API) togglePublishStatus(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	video, err := api.content.TogglePublishStatus(c.Request.Context(), userID(c), videoID)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (api *API) deleteVideo(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	if err := api.content.DeleteVideo(c.Request.Context(), userID(c), videoID); err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}

func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}
