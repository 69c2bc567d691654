package httpserver

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// importProductsHandler accepts a multipart "file" field holding an xlsx
// workbook or a CSV export and bulk-loads it into the store.
func importProductsHandler(newImporter func(storeID string) ProductImporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if newImporter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "import not configured"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "file field required")
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "cannot read uploaded file")
			return
		}
		defer f.Close()

		imp := newImporter(currentStore(c).ID)
		var summary any
		switch strings.ToLower(filepath.Ext(fh.Filename)) {
		case ".xlsx":
			summary, err = imp.ImportXLSX(c.Request.Context(), f)
		case ".csv":
			summary, err = imp.ImportCSV(c.Request.Context(), f)
		default:
			badRequest(c, "unsupported file type (want .xlsx or .csv)")
			return
		}
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
