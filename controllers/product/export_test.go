package productcontroller

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlabs/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestExportProductsToExcel(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, models.Product{Name: "Widget", Brand: "Acme", Category: models.CategoryElectronics, Price: 10, Stock: 5, SKU: "ELE-100"})
	seedProduct(t, db, models.Product{Name: "Gadget", Brand: "Acme", Category: models.CategoryToys, Price: 7.5, Stock: 3, SKU: "TOY-100"})

	r := gin.New()
	r.GET("/api/admin/products/export", identityMiddleware("someadmin", "Admin", models.RoleAdmin), ExportProductsToExcel(db))
	w := doRequest(t, r, "GET", "/api/admin/products/export", nil)

	require.Equal(t, 200, w.Code)
	assert.Equal(t, `attachment; filename="products.xlsx"`, w.Header().Get("Content-Disposition"))

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)

	// Header row plus one row per product.
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Widget", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "TOY-100", sheet.Rows[2].Cells[4].Value)
}

func TestExportProductsToExcelEmptyCatalog(t *testing.T) {
	db := newTestDB(t)

	r := gin.New()
	r.GET("/api/admin/products/export", identityMiddleware("someadmin", "Admin", models.RoleAdmin), ExportProductsToExcel(db))
	w := doRequest(t, r, "GET", "/api/admin/products/export", nil)

	require.Equal(t, 200, w.Code)
	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	require.Len(t, file.Sheets[0].Rows, 1)
}
