package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
	catalogsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/catalog"
)

// runPager executes one navigation step and responds with the page plus a
// state token the client sends back on the next step.
func runPager[T any](c *gin.Context, p *paging.Pager[T], filter string) {
	var (
		res *paging.Result[T]
		err error
	)
	switch nav := c.DefaultQuery("nav", "first"); nav {
	case "first":
		res, err = p.SetFilter(c.Request.Context(), filter)
	case "next":
		res, err = p.GoNext(c.Request.Context())
	case "prev":
		res, err = p.GoPrev(c.Request.Context())
	default:
		badRequest(c, "nav must be first, next, or prev")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	items := res.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"page":    res.Page,
		"hasNext": res.HasNext,
		"hasPrev": res.HasPrev,
		"state":   p.State(),
	})
}

func listProductsHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Pager(currentStore(c).ID, c.Query("state"))
		if err != nil {
			badRequest(c, "invalid state token")
			return
		}
		runPager(c, p, c.Query("category"))
	}
}

func createProductHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid product payload")
			return
		}
		p, err := catalog.Create(c.Request.Context(), currentStore(c).ID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": p})
	}
}

func getProductHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Get(c.Request.Context(), currentStore(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func updateProductHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid product payload")
			return
		}
		p, err := catalog.Update(c.Request.Context(), currentStore(c).ID, c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func deleteProductHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Delete(c.Request.Context(), currentStore(c).ID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
