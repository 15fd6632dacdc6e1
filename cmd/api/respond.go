package main

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aditya-4747/VideoStreamAPI/internal/middleware"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
)

// fail maps a service error onto its HTTP status. Internal details are
// logged but never returned to the client.
func (api *API) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		api.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// pathID returns a path parameter validated as a UUID. A malformed ID
// is rejected here so it never reaches a uuid-typed column cast.
func pathID(c *gin.Context, name string) (string, error) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.New(apperr.KindValidation, "invalid %s", name)
	}
	return id, nil
}

// validIDs checks every member of a batch the same way pathID does.
func validIDs(ids []string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return apperr.New(apperr.KindValidation, "invalid video ID %q", id)
		}
	}
	return nil
}

// userID returns the authenticated user set by the auth middleware.
// Routes calling this are always behind middleware.Auth.
func userID(c *gin.Context) string {
	id, _ := middleware.GetUserID(c)
	return id
}

// saveUpload spools a multipart file to a temp path for the media
// store to pick up. Callers remove the file when done.
func (api *API) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	tempPath := filepath.Join(os.TempDir(), uuid.NewString())
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return tempPath, nil
}
