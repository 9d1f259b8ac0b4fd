package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Iamjava/nutritionist/middlewares"
	"github.com/Iamjava/nutritionist/models"
	"github.com/Iamjava/nutritionist/services"
)

type MealController struct {
	meals *services.MealService
	users *services.UserService
}

func NewMealController(meals *services.MealService, users *services.UserService) *MealController {
	return &MealController{meals: meals, users: users}
}

// currentUser materializes the claimed identity as a stored user record.
// Authorization always runs against the stored role, where a nutritionist's
// delegated list lives.
func (m *MealController) currentUser(c *gin.Context) (*models.User, error) {
	return m.users.EnsureUser(c.Request.Context(), middlewares.CurrentIdentity(c))
}

func (m *MealController) Index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/meals")
}

func (m *MealController) ListMeals(c *gin.Context) {
	user, err := m.currentUser(c)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	meals, err := m.meals.MealsForUser(c.Request.Context(), user.ID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "meals.html", gin.H{
		"Username": user.Name,
		"Owner":    user.ID,
		"Days":     models.GroupByDay(meals),
		"Today":    time.Now().UTC().Format(models.DateLayout),
	})
}

// NewMeal finds or creates today's slot for the given type and redirects to
// it. Visiting the same slot twice lands on the same meal id.
func (m *MealController) NewMeal(c *gin.Context) {
	user, err := m.currentUser(c)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	mealType := models.ParseMealType(c.Param("type"))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	meal, err := m.meals.FindOrCreate(c.Request.Context(), user.ID, today, mealType)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/meals/"+meal.ID.String())
}

type contentRow struct {
	ID       uuid.UUID
	Name     string
	Quantity float64
	Values   models.NutrientValues
}

func (m *MealController) renderMeal(c *gin.Context, meal *models.Meal) {
	rows := make([]contentRow, 0, len(meal.Contents))
	for _, content := range meal.Contents {
		rows = append(rows, contentRow{
			ID:       content.ID,
			Name:     content.Product.Name(),
			Quantity: content.Quantity,
			Values:   content.Values(),
		})
	}
	c.HTML(http.StatusOK, "meal.html", gin.H{
		"Meal":     meal,
		"Contents": rows,
		"Macros":   meal.Macros(),
	})
}

func (m *MealController) ShowMeal(c *gin.Context) {
	user, err := m.currentUser(c)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	meal, err := m.meals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	if !user.Role.CanView(user.ID, meal.UserID) {
		renderError(c, http.StatusForbidden, fmt.Errorf("not allowed to view this meal"))
		return
	}
	m.renderMeal(c, meal)
}

func (m *MealController) AddContent(c *gin.Context) {
	user, err := m.currentUser(c)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}

	var form struct {
		ProductCode string  `form:"product_code" binding:"required"`
		Amount      float64 `form:"amount" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, http.StatusBadRequest, err)
		return
	}

	mealID := c.Param("id")
	meal, err := m.meals.Get(c.Request.Context(), mealID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	if !user.Role.CanView(user.ID, meal.UserID) {
		renderError(c, http.StatusForbidden, fmt.Errorf("not allowed to edit this meal"))
		return
	}

	if _, err := m.meals.AddContent(c.Request.Context(), mealID, form.ProductCode, form.Amount); err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/meals/"+mealID)
}

func (m *MealController) RemoveContent(c *gin.Context) {
	user, err := m.currentUser(c)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	contentID, err := uuid.Parse(c.Param("content"))
	if err != nil {
		renderError(c, http.StatusBadRequest, err)
		return
	}

	mealID := c.Param("id")
	meal, err := m.meals.Get(c.Request.Context(), mealID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	if !user.Role.CanView(user.ID, meal.UserID) {
		renderError(c, http.StatusForbidden, fmt.Errorf("not allowed to edit this meal"))
		return
	}

	if _, err := m.meals.RemoveContent(c.Request.Context(), mealID, contentID); err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/meals/"+mealID)
}

// UserMeals is the nutritionist view of another user's log. Plain users only
// ever see their own.
func (m *MealController) UserMeals(c *gin.Context) {
	viewer, err := m.currentUser(c)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	owner := c.Param("id")
	if !viewer.Role.CanView(viewer.ID, owner) {
		renderError(c, http.StatusForbidden, fmt.Errorf("not allowed to view meals of %s", owner))
		return
	}
	meals, err := m.meals.MealsForUser(c.Request.Context(), owner)
	if err != nil {
		renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "meals.html", gin.H{
		"Username": viewer.Name,
		"Owner":    owner,
		"Days":     models.GroupByDay(meals),
		"Today":    time.Now().UTC().Format(models.DateLayout),
	})
}
