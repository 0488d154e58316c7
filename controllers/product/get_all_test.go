package productcontroller

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlabs/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type listResponse struct {
	Products   []models.Product `json:"products"`
	Pagination struct {
		CurrentPage   int   `json:"currentPage"`
		TotalPages    int   `json:"totalPages"`
		TotalProducts int64 `json:"totalProducts"`
		HasNextPage   bool  `json:"hasNextPage"`
		HasPrevPage   bool  `json:"hasPrevPage"`
	} `json:"pagination"`
}

func listProducts(t *testing.T, db *gorm.DB, query string) listResponse {
	t.Helper()
	r := gin.New()
	r.GET("/api/products", GetProducts(db))

	w := doRequest(t, r, "GET", "/api/products"+query, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetProductsPagination(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedProduct(t, db, models.Product{
			Name:      fmt.Sprintf("Product %02d", i),
			Price:     float64(i + 1),
			Stock:     10,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	resp := listProducts(t, db, "?page=1&limit=10")
	assert.Len(t, resp.Products, 10)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, int64(25), resp.Pagination.TotalProducts)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.False(t, resp.Pagination.HasPrevPage)

	// Default order is newest-created first.
	assert.Equal(t, "Product 24", resp.Products[0].Name)

	resp = listProducts(t, db, "?page=3&limit=10")
	assert.Len(t, resp.Products, 5)
	assert.False(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}

func TestGetProductsSort(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, models.Product{Name: "Banana", Price: 3, Ratings: 4.5, Stock: 1})
	seedProduct(t, db, models.Product{Name: "Apple", Price: 9, Ratings: 2.0, Stock: 1})
	seedProduct(t, db, models.Product{Name: "Cherry", Price: 6, Ratings: 5.0, Stock: 1})

	resp := listProducts(t, db, "?sort=price_asc")
	require.Len(t, resp.Products, 3)
	assert.Equal(t, []float64{3, 6, 9}, []float64{resp.Products[0].Price, resp.Products[1].Price, resp.Products[2].Price})

	resp = listProducts(t, db, "?sort=price_desc")
	assert.Equal(t, 9.0, resp.Products[0].Price)

	resp = listProducts(t, db, "?sort=name_asc")
	assert.Equal(t, "Apple", resp.Products[0].Name)

	resp = listProducts(t, db, "?sort=rating_desc")
	assert.Equal(t, "Cherry", resp.Products[0].Name)
}

func TestGetProductsFilters(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, models.Product{Name: "Laptop", Brand: "Lenu", Category: models.CategoryElectronics, Price: 900, Stock: 3})
	seedProduct(t, db, models.Product{Name: "Phone", Brand: "Pear", Category: models.CategoryElectronics, Price: 500, Stock: 3})
	seedProduct(t, db, models.Product{Name: "Novel", Brand: "Pear", Category: models.CategoryBooks, Price: 12, Stock: 3})

	resp := listProducts(t, db, "?category=electronics")
	assert.Len(t, resp.Products, 2)

	resp = listProducts(t, db, "?brand=Pear")
	assert.Len(t, resp.Products, 2)

	resp = listProducts(t, db, "?minPrice=100&maxPrice=600")
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Phone", resp.Products[0].Name)

	resp = listProducts(t, db, "?search=LAPTOP")
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Laptop", resp.Products[0].Name)
}

func TestGetProductsBadParams(t *testing.T) {
	db := newTestDB(t)
	r := gin.New()
	r.GET("/api/products", GetProducts(db))

	for _, query := range []string{"?category=vehicles", "?minPrice=abc", "?maxPrice=abc"} {
		w := doRequest(t, r, "GET", "/api/products"+query, nil)
		assert.Equal(t, 400, w.Code, query)
	}

	// Unknown sort falls back to the default instead of erroring.
	w := doRequest(t, r, "GET", "/api/products?sort=bogus", nil)
	assert.Equal(t, 200, w.Code)
}
