package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iamjava/nutritionist/middlewares"
	"github.com/Iamjava/nutritionist/utils"
)

// AuthController issues the session cookie the identity middleware consumes.
// It stands in for the external identity provider so the app runs end to end.
type AuthController struct {
	secret []byte
}

func NewAuthController(secret []byte) *AuthController {
	return &AuthController{secret: secret}
}

func (a *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (a *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	if username == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "username is required"})
		return
	}
	name := c.DefaultPostForm("name", username)
	email := c.PostForm("email")
	role := c.DefaultPostForm("role", "plain")

	token, err := utils.GenerateToken(a.secret, username, name, email, role)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.SetCookie(middlewares.SessionCookie, token, 72*3600, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/meals")
}

func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
