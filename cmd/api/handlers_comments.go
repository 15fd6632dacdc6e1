package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
)

func (api *API) videoComments(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	comments, err := api.aggregation.VideoComments(c.Request.Context(), videoID, intQuery(c, "page"), intQuery(c, "limit"))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (api *API) addComment(c *gin.Context) {
	videoID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	comment, err := api.content.AddComment(c.Request.Context(), userID(c), videoID, req.Content)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (api *API) updateComment(c *gin.Context) {
	commentID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	comment, err := api.content.UpdateComment(c.Request.Context(), userID(c), commentID, req.Content)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (api *API) removeComment(c *gin.Context) {
	commentID, err := pathID(c, "id")
	if err != nil {
		api.fail(c, err)
		return
	}

	if err := api.content.RemoveComment(c.Request.Context(), userID(c), commentID); err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
