package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefrontlabs/storefront-api/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("order line quantity must be positive")
	ErrProductNotFound   = errors.New("product does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOwner          = errors.New("not allowed to access this order")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// -------- Request Structs --------

// OrderLineInput is one line of the submitted cart snapshot. Name, image,
// and price are frozen into the order exactly as submitted.
type OrderLineInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items []OrderLineInput `json:"items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder persists a pending order from the submitted cart snapshot.
// Line prices come from the snapshot, not from live product data; stock is
// decremented per line with a conditional update so two concurrent orders
// cannot both take the last unit.
func PlaceOrder(db *gorm.DB, ownerID string, items []OrderLineInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	var total float64
	var orderItems []models.OrderItem
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		OwnerID:     ownerID,
		OrderRef:    generateOrderRef(),
		Items:       orderItems,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrder loads an order by numeric id or order reference.
func FindOrder(db *gorm.DB, idParam string) (*models.Order, error) {
	var order models.Order
	query := db.Preload("Items")
	if id, err := strconv.ParseUint(idParam, 10, 64); err == nil {
		err = query.First(&order, uint(id)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return &order, err
	}
	err := query.Where("order_ref = ?", idParam).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return &order, err
}

// UpdateStatus overwrites the order status after checking the caller and
// the legal-transition table.
func UpdateStatus(db *gorm.DB, order *models.Order, newStatus models.OrderStatus) error {
	if !models.TransitionAllowed(order.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, newStatus)
	}
	if err := db.Model(order).Update("status", newStatus).Error; err != nil {
		return err
	}
	order.Status = newStatus
	return nil
}

// canAccess reports whether the caller may read or mutate the order: its
// owner or an admin.
func canAccess(c *gin.Context, order *models.Order) bool {
	return c.GetString("role") == models.RoleAdmin || order.OwnerID == c.GetString("user_id")
}

// -------- Handlers --------

// PlaceOrderHandler handles POST /api/orders.
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, c.GetString("user_id"), req.Items)
		switch {
		case err == nil:
			broadcastOrderUpdate(*order)
			c.JSON(http.StatusCreated, order)
		case errors.Is(err, ErrEmptyCart),
			errors.Is(err, ErrInvalidQuantity),
			errors.Is(err, ErrProductNotFound),
			errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
	}
}

// ListOrdersHandler handles GET /api/orders: the caller's orders, newest
// first.
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Where("owner_id = ?", c.GetString("user_id")).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderHandler handles GET /api/orders/:id. Owner or admin only.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := FindOrder(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}
		if !canAccess(c, order) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrNotOwner.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatusHandler handles PUT /api/orders/:id/status.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := FindOrder(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}
		if !canAccess(c, order) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrNotOwner.Error()})
			return
		}

		if err := UpdateStatus(db, order, newStatus); err != nil {
			if errors.Is(err, ErrIllegalTransition) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			}
			return
		}

		broadcastOrderUpdate(*order)
		c.JSON(http.StatusOK, order)
	}
}
