package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shoppit/models"
	"shoppit/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// GetAllProducts godoc
// @Summary List products
// @Description All catalog products.
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	products, err := ctrl.products.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load products"})
		return
	}
	c.JSON(200, products)
}

// GetProductDetail godoc
// @Summary Product detail
// @Description Product by slug with dimensions, meta, reviews and similar products.
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.DetailedProduct
// @Failure 404 {object} models.ErrorResponse
// @Router /product_detail/{slug} [get]
func (ctrl *ProductController) GetProductDetail(c *gin.Context) {
	slug := c.Param("slug")

	detailed, err := ctrl.products.GetProductDetail(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to load product"})
		return
	}

	c.JSON(200, detailed)
}

// ImportProducts godoc
// @Summary Import products
// @Description Bulk import catalog products, reporting a per-item result.
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ImportProductsRequest true "Products to import"
// @Success 200 {array} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Router /import_products [post]
func (ctrl *ProductController) ImportProducts(c *gin.Context) {
	var req models.ImportProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "products payload is required"})
		return
	}

	results := ctrl.products.ImportProducts(c.Request.Context(), req.Products)
	c.JSON(200, results)
}
