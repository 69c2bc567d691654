package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func signUploadHandler(mediaSvc MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mediaSvc == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media uploads not configured"})
			return
		}
		var req struct {
			Kind string `json:"kind" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "kind required")
			return
		}
		signed, err := mediaSvc.SignUpload(currentStore(c).ID, req.Kind)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, signed)
	}
}

// deleteAssetHandler removes an orphaned upload, e.g. an image uploaded
// and then discarded before the product was saved. The public id must sit
// under the caller's store folder.
func deleteAssetHandler(mediaSvc MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mediaSvc == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media uploads not configured"})
			return
		}
		var req struct {
			PublicID string `json:"publicId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "publicId required")
			return
		}
		if !strings.HasPrefix(req.PublicID, "stores/"+currentStore(c).ID+"/") {
			c.JSON(http.StatusForbidden, gin.H{"error": "asset does not belong to this store"})
			return
		}
		if err := mediaSvc.DeleteAsset(c.Request.Context(), req.PublicID); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
