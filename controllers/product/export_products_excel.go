package productcontroller

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"go.uber.org/zap"
)

// GET /admin/products/export-excel
func ExportProductsToExcel(products *admin.Products, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Buffer first so a failure can still be reported as JSON.
		var buf bytes.Buffer
		if err := products.ExportXLSX(c.Request.Context(), &buf); err != nil {
			controllers.RespondError(c, logger, err, "Failed to write Excel file")
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
