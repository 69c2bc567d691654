package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

func listOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := orders.Pager(currentStore(c).ID, c.Query("state"))
		if err != nil {
			badRequest(c, "invalid state token")
			return
		}
		runPager(c, p, c.Query("status"))
	}
}

func getOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.Get(c.Request.Context(), currentStore(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o})
	}
}

func updateOrderStatusHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status domain.OrderStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "status required")
			return
		}
		o, err := orders.UpdateStatus(c.Request.Context(), currentStore(c).ID, c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o})
	}
}

func deleteOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orders.Delete(c.Request.Context(), currentStore(c).ID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func orderStatsHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := orders.CountByStatus(c.Request.Context(), currentStore(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"counts": counts})
	}
}

func listClientsHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clients, err := orders.Clients(c.Request.Context(), currentStore(c).ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if clients == nil {
			clients = []domain.Client{}
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
	}
}

func getClientHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl, err := orders.Client(c.Request.Context(), currentStore(c).ID, c.Param("phone"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"client": cl})
	}
}
