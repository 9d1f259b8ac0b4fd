package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iamjava/nutritionist/middlewares"
	"github.com/Iamjava/nutritionist/models"
	"github.com/Iamjava/nutritionist/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (u *UserController) Profile(c *gin.Context) {
	user, err := u.users.EnsureUser(c.Request.Context(), middlewares.CurrentIdentity(c))
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User": user,
	})
}

// Directory lists every known user. Admins only.
func (u *UserController) Directory(c *gin.Context) {
	viewer, err := u.users.EnsureUser(c.Request.Context(), middlewares.CurrentIdentity(c))
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	if viewer.Role.Kind != models.RoleAdmin {
		renderError(c, http.StatusForbidden, fmt.Errorf("only admins can list users"))
		return
	}
	users, err := u.users.ListAll(c.Request.Context())
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "users.html", gin.H{
		"Users": users,
	})
}

// Delegate adds a user id to the requesting nutritionist's delegated list,
// granting read access to that user's meals.
func (u *UserController) Delegate(c *gin.Context) {
	user, err := u.users.EnsureUser(c.Request.Context(), middlewares.CurrentIdentity(c))
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	if user.Role.Kind != models.RoleNutritionist {
		renderError(c, http.StatusForbidden, fmt.Errorf("only nutritionists can delegate users"))
		return
	}
	owner := c.PostForm("user_id")
	if owner == "" {
		renderError(c, http.StatusBadRequest, fmt.Errorf("user_id is required"))
		return
	}
	if err := u.users.Delegate(c.Request.Context(), user.ID, owner); err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}
