package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/aditya-4747/VideoStreamAPI/internal/auth"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

func (api *API) register(c *gin.Context) {
	input := auth.RegisterInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		FullName: c.PostForm("fullName"),
		Password: c.PostForm("password"),
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "avatar is required"))
		return
	}

	avatarPath, err := api.saveUpload(c, avatar)
	if err != nil {
		api.fail(c, err)
		return
	}
	defer os.Remove(avatarPath)
	input.AvatarPath = avatarPath
	input.AvatarName = avatar.Filename

	if cover, err := c.FormFile("coverImage"); err == nil {
		coverPath, err := api.saveUpload(c, cover)
		if err != nil {
			api.fail(c, err)
			return
		}
		defer os.Remove(coverPath)
		input.CoverPath = coverPath
		input.CoverName = cover.Filename
	}

	user, err := api.auth.Register(c.Request.Context(), input)
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (api *API) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, pair, err := api.auth.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		api.fail(c, err)
		return
	}

	api.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (api *API) refreshToken(c *gin.Context) {
	presented, _ := c.Cookie(refreshTokenCookie)
	if presented == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := api.auth.Refresh(c.Request.Context(), presented)
	if err != nil {
		api.fail(c, err)
		return
	}

	api.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (api *API) logout(c *gin.Context) {
	if err := api.auth.Logout(c.Request.Context(), userID(c)); err != nil {
		api.fail(c, err)
		return
	}

	api.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (api *API) currentUser(c *gin.Context) {
	user, err := api.auth.CurrentUser(c.Request.Context(), userID(c))
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (api *API) setTokenCookies(c *gin.Context, pair *models.TokenPair) {
	c.SetCookie(accessTokenCookie, pair.AccessToken, int(api.cfg.Auth.AccessTokenTTL.Seconds()), "/", "", true, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken, int(api.cfg.Auth.RefreshTokenTTL.Seconds()), "/", "", true, true)
}

func (api *API) clearTokenCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", true, true)
}
