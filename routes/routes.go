package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Iamjava/nutritionist/config"
	"github.com/Iamjava/nutritionist/controllers"
	"github.com/Iamjava/nutritionist/middlewares"
	"github.com/Iamjava/nutritionist/services"
	"github.com/Iamjava/nutritionist/store"
)

// SetupRouter wires store, services and controllers once at startup and
// returns the configured engine. No package-level state is involved.
func SetupRouter(cfg *config.Config, st *store.Store) *gin.Engine {
	userSvc := services.NewUserService(st)
	mealSvc := services.NewMealService(st)
	openffSvc := services.NewOpenFoodFactsService(st)
	usdaSvc := services.NewUSDAService(st, cfg.USDAAPIKey)

	secret := []byte(cfg.SessionSecret)
	auth := controllers.NewAuthController(secret)
	meals := controllers.NewMealController(mealSvc, userSvc)
	search := controllers.NewSearchController(openffSvc, usdaSvc)
	users := controllers.NewUserController(userSvc)

	r := gin.Default()
	r.LoadHTMLGlob(cfg.TemplateGlob)

	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)

	authed := r.Group("/")
	authed.Use(middlewares.IdentityMiddleware(secret))
	{
		authed.GET("/", meals.Index)
		authed.GET("/meals", meals.ListMeals)
		authed.GET("/meals/new/:type", meals.NewMeal)
		authed.GET("/meals/:id", meals.ShowMeal)
		authed.POST("/meals/:id", meals.AddContent)
		authed.POST("/meals/:id/delete/:content", meals.RemoveContent)

		authed.GET("/search", search.ShowSearch)
		authed.POST("/search", search.SearchProducts)
		authed.GET("/meals/:id/search", search.ShowSearch)
		authed.POST("/meals/:id/search", search.SearchProducts)
		authed.POST("/meals/:id/usda", search.SearchUSDA)

		authed.GET("/profile", users.Profile)
		authed.GET("/users", users.Directory)
		authed.POST("/delegate", users.Delegate)
		authed.GET("/users/:id/meals", meals.UserMeals)
	}

	return r
}
