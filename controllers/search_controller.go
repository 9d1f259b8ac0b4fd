package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iamjava/nutritionist/services"
)

type SearchController struct {
	openff *services.OpenFoodFactsService
	usda   *services.USDAService
}

func NewSearchController(openff *services.OpenFoodFactsService, usda *services.USDAService) *SearchController {
	return &SearchController{openff: openff, usda: usda}
}

// ShowSearch renders the empty search form. With a meal id in the path the
// results link back as add-to-meal actions.
func (s *SearchController) ShowSearch(c *gin.Context) {
	c.HTML(http.StatusOK, "search.html", gin.H{
		"MealID": c.Param("id"),
		"Query":  "",
	})
}

// SearchProducts queries OpenFoodFacts (local cache first) and renders the
// product results.
func (s *SearchController) SearchProducts(c *gin.Context) {
	query := c.PostForm("query")
	if query == "" {
		s.ShowSearch(c)
		return
	}
	products, err := s.openff.Search(c.Request.Context(), query)
	if err != nil {
		renderError(c, http.StatusBadGateway, err)
		return
	}
	c.HTML(http.StatusOK, "search.html", gin.H{
		"MealID":   c.Param("id"),
		"Query":    query,
		"Products": products,
	})
}

// SearchUSDA queries the USDA food database, answering from the week-long
// query cache when possible.
func (s *SearchController) SearchUSDA(c *gin.Context) {
	query := c.PostForm("query")
	if query == "" {
		s.ShowSearch(c)
		return
	}
	foods, err := s.usda.Search(c.Request.Context(), query)
	if err != nil {
		renderError(c, http.StatusBadGateway, err)
		return
	}
	c.HTML(http.StatusOK, "search.html", gin.H{
		"MealID": c.Param("id"),
		"Query":  query,
		"Foods":  foods,
	})
}
