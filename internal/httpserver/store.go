package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storesvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/store"
)

func registerStoreHandler(stores StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req storesvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid store payload")
			return
		}
		m := currentMerchant(c)
		if _, err := stores.GetByOwner(c.Request.Context(), m.ID); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "store already registered"})
			return
		}
		st, err := stores.Register(c.Request.Context(), m.ID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"store": st})
	}
}

func getStoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"store": currentStore(c)})
	}
}

func updateStoreHandler(stores StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req storesvc.UpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid store payload")
			return
		}
		st, err := stores.Update(c.Request.Context(), currentMerchant(c).ID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"store": st})
	}
}
