package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	accountsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/account"
	catalogsvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/catalog"
	categorysvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/category"
	storesvc "github.com/juan-beltranos/catalogo-interactivo/internal/service/store"
)

// writeError maps service errors onto HTTP statuses. Anything unmapped is
// an internal error and the message is not echoed back.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, storesvc.ErrSlugTaken),
		errors.Is(err, catalogsvc.ErrSKUTaken),
		errors.Is(err, categorysvc.ErrCategoryInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, accountsvc.ErrInvalidCredentials),
		errors.Is(err, accountsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
