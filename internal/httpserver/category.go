package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	// Order places the category in the storefront menu; negative or
	// omitted appends to the end.
	Order *int `json:"order"`
}

func (r categoryRequest) order() int {
	if r.Order == nil {
		return -1
	}
	return *r.Order
}

func listCategoriesHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.List(c.Request.Context(), currentStore(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if list == nil {
			list = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": list})
	}
}

func createCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "category name required")
			return
		}
		cat, err := categories.Create(c.Request.Context(), currentStore(c).ID, req.Name, req.order())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"category": cat})
	}
}

func updateCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "category name required")
			return
		}
		cat, err := categories.Update(c.Request.Context(), currentStore(c).ID, c.Param("id"), req.Name, req.order())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": cat})
	}
}

func deleteCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := categories.Delete(c.Request.Context(), currentStore(c).ID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
