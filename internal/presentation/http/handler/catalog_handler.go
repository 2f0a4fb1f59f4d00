package handler

import (
	"github.com/FRANKLIN09020/smart-billing/internal/application/service"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/request"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/dto/response"
	"github.com/FRANKLIN09020/smart-billing/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles product-related HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles listing products with search and category filters
func (h *CatalogHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, meta := h.catalogService.ListProducts(c.Request.Context(), &service.ListProductsInput{
		Search:   filter.Search,
		Category: filter.Category,
		Pagination: pagination.Params{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	})

	response.SuccessWithPagination(c, "Products retrieved successfully", response.NewProductListResponse(products), meta)
}

// Categories returns the category filter options
func (h *CatalogHandler) Categories(c *gin.Context) {
	response.OK(c, "Categories retrieved successfully", h.catalogService.Categories(c.Request.Context()))
}

// Get handles getting a single product
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", response.NewProductResponse(product))
}

// Create handles adding a product to the catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		ID:        req.ID,
		Name:      req.Name,
		UnitPrice: *req.UnitPrice,
		Stock:     req.Stock,
		Category:  req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", response.NewProductResponse(product))
}

// Restock handles adding stock to a product
func (h *CatalogHandler) Restock(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var req request.RestockRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.Restock(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product restocked successfully", response.NewProductResponse(product))
}
