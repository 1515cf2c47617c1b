package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shoppit/models"
	"shoppit/services"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a product to the cart for a cart code, creating the cart on first use. Re-adding the same product increments its quantity.
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddItemRequest true "Add Item Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /add_item [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "cart_code and product_id are required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := ctrl.cart.AddItem(c.Request.Context(), req.CartCode, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(404, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to add item to cart"})
		}
		return
	}

	c.JSON(201, gin.H{
		"success":   true,
		"message":   "Item added to cart successfully",
		"cart_item": item,
	})
}

// UpdateQuantity godoc
// @Summary Update cart item quantity
// @Description Overwrite a line item's quantity. Zero or negative removes the item.
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.UpdateQuantityRequest true "Update Quantity Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /update_quantity [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "item_id and quantity are required"})
		return
	}

	item, removed, err := ctrl.cart.UpdateQuantity(c.Request.Context(), req.ItemID, *req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(404, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart item"})
		return
	}

	if removed {
		c.JSON(200, gin.H{"success": true, "message": "Item removed from cart successfully"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart item updated successfully",
		"data":    item,
	})
}

// GetCart godoc
// @Summary Get cart
// @Description Full unpaid cart for a cart code, items and totals included.
// @Tags Cart
// @Produce json
// @Param cart_code query string true "Cart code"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /get_cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cartCode := c.Query("cart_code")
	if cartCode == "" {
		c.JSON(400, gin.H{"success": false, "message": "cart_code is required"})
		return
	}

	cart, err := ctrl.cart.GetCart(c.Request.Context(), cartCode)
	if err != nil {
		respondCartLookupError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"id":           cart.ID,
		"cart_code":    cart.CartCode,
		"items":        cart.Items,
		"sum_total":    cart.SumTotal(),
		"num_of_items": cart.NumItems(),
		"created_at":   cart.CreatedAt,
		"modified_at":  cart.ModifiedAt,
	})
}

// GetCartSummary godoc
// @Summary Get cart summary
// @Description Item count and total for a cart code.
// @Tags Cart
// @Produce json
// @Param cart_code query string true "Cart code"
// @Success 200 {object} models.CartSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /get_cart_stat [get]
func (ctrl *CartController) GetCartSummary(c *gin.Context) {
	cartCode := c.Query("cart_code")
	if cartCode == "" {
		c.JSON(400, gin.H{"success": false, "message": "cart_code is required"})
		return
	}

	summary, err := ctrl.cart.GetCartSummary(c.Request.Context(), cartCode)
	if err != nil {
		respondCartLookupError(c, err)
		return
	}

	c.JSON(200, summary)
}

// ProductInCart godoc
// @Summary Check product membership
// @Description Whether a product is in the cart. A missing cart yields false, never 404.
// @Tags Cart
// @Produce json
// @Param cart_code query string true "Cart code"
// @Param product_id query int true "Product ID"
// @Success 200 {object} map[string]bool
// @Router /product_in_cart [get]
func (ctrl *CartController) ProductInCart(c *gin.Context) {
	cartCode := c.Query("cart_code")
	productID, err := strconv.Atoi(c.Query("product_id"))
	if cartCode == "" || err != nil {
		c.JSON(400, gin.H{"success": false, "message": "cart_code and product_id are required"})
		return
	}

	exists, err := ctrl.cart.ProductInCart(c.Request.Context(), cartCode, productID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to check cart"})
		return
	}

	c.JSON(200, gin.H{"product_in_cart": exists})
}

func respondCartLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartNotFound), errors.Is(err, services.ErrCartAlreadyPaid):
		c.JSON(404, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
	}
}
