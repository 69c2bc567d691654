package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	ordersvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/order"
)

// publicStore is the storefront view of a store: no owner or asset
// bookkeeping fields.
type publicStore struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	WhatsApp    string `json:"whatsapp"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

func toPublicStore(st *domain.Store) publicStore {
	return publicStore{
		Name:        st.Name,
		Slug:        st.Slug,
		WhatsApp:    st.WhatsApp,
		Description: st.Description,
		LogoURL:     st.LogoURL,
	}
}

func publicStoreHandler(stores StoreService, categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		cats, err := categories.List(c.Request.Context(), st.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if cats == nil {
			cats = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{
			"store":      toPublicStore(st),
			"categories": cats,
		})
	}
}

func publicProductsHandler(stores StoreService, catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		p, err := catalog.Pager(st.ID, c.Query("state"))
		if err != nil {
			badRequest(c, "invalid state token")
			return
		}
		runPager(c, p, c.Query("category"))
	}
}

func publicProductHandler(stores StoreService, catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		p, err := catalog.Get(c.Request.Context(), st.ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func placeOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid order payload")
			return
		}
		placed, err := orders.Place(c.Request.Context(), c.Param("slug"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, placed)
	}
}
