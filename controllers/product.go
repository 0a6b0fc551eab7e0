package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ooyyss26/product-api/models"
	"github.com/ooyyss26/product-api/render"
	"github.com/ooyyss26/product-api/repository"
	"github.com/ooyyss26/product-api/requests"
	"github.com/ooyyss26/product-api/service"
)

type productController struct {
	products service.ProductService
	tokens   service.TokenService
}

func NewProductController(products service.ProductService, tokens service.TokenService) Controller {
	return &productController{
		products: products,
		tokens:   tokens,
	}
}

func (p *productController) Register(r *gin.Engine) {
	group := r.Group("/products")
	group.Use(RequireAuth(p.tokens))
	group.GET("", p.List)
	group.POST("", p.Create)
	group.GET("/:id", p.Get)
	group.PUT("/:id", p.Update)
	group.DELETE("/:id", p.Delete)
}

func (p *productController) List(c *gin.Context) {
	format, ok := resolveFormat(c)
	if !ok {
		return
	}

	search := strings.TrimSpace(c.Query("search"))
	items, err := p.products.ListProducts(c.Request.Context(), search)
	if err != nil {
		respond(c, http.StatusInternalServerError, format, storeError(err))
		return
	}

	trees := make([]any, 0, len(items))
	for _, item := range items {
		trees = append(trees, productTree(item))
	}
	respond(c, http.StatusOK, format, gin.H{"products": trees})
}

func (p *productController) Create(c *gin.Context) {
	format, ok := resolveFormat(c)
	if !ok {
		return
	}

	payload, ok := p.bindPayload(c, format)
	if !ok {
		return
	}

	id, err := p.products.CreateProduct(c.Request.Context(), payload.Name(), payload.Price())
	if err != nil {
		respond(c, http.StatusInternalServerError, format, storeError(err))
		return
	}

	respond(c, http.StatusCreated, format, gin.H{"message": "Product created", "id": id})
}

func (p *productController) Get(c *gin.Context) {
	format, ok := resolveFormat(c)
	if !ok {
		return
	}

	id, ok := p.productID(c, format)
	if !ok {
		return
	}

	product, err := p.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respond(c, http.StatusNotFound, format, gin.H{"error": "Product not found"})
			return
		}
		respond(c, http.StatusInternalServerError, format, storeError(err))
		return
	}

	respond(c, http.StatusOK, format, productTree(*product))
}

func (p *productController) Update(c *gin.Context) {
	format, ok := resolveFormat(c)
	if !ok {
		return
	}

	id, ok := p.productID(c, format)
	if !ok {
		return
	}

	payload, ok := p.bindPayload(c, format)
	if !ok {
		return
	}

	err := p.products.UpdateProduct(c.Request.Context(), id, payload.Name(), payload.Price())
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respond(c, http.StatusNotFound, format, gin.H{"error": "Product not found"})
			return
		}
		respond(c, http.StatusInternalServerError, format, storeError(err))
		return
	}

	respond(c, http.StatusOK, format, gin.H{"message": "Product updated"})
}

func (p *productController) Delete(c *gin.Context) {
	format, ok := resolveFormat(c)
	if !ok {
		return
	}

	id, ok := p.productID(c, format)
	if !ok {
		return
	}

	err := p.products.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respond(c, http.StatusNotFound, format, gin.H{"error": "Product not found"})
			return
		}
		respond(c, http.StatusInternalServerError, format, storeError(err))
		return
	}

	respond(c, http.StatusOK, format, gin.H{"message": "Product deleted"})
}

// bindPayload reads and validates the mutating-request body. A missing or
// unparseable JSON body is a distinct client error from a validation
// failure.
func (p *productController) bindPayload(c *gin.Context, format render.Format) (*requests.ProductPayload, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond(c, http.StatusBadRequest, format, gin.H{"error": "JSON data required"})
		return nil, false
	}

	payload, err := requests.DecodeProductPayload(body)
	if err != nil {
		respond(c, http.StatusBadRequest, format, gin.H{"error": "JSON data required"})
		return nil, false
	}

	if violations := payload.Validate(); len(violations) > 0 {
		respond(c, http.StatusBadRequest, format,
			gin.H{"error": "Validation failed", "details": violations})
		return nil, false
	}
	return payload, true
}

// productID parses the path id. A non-integer id cannot name any product,
// so it answers 404 in the negotiated format.
func (p *productController) productID(c *gin.Context, format render.Format) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusNotFound, format, gin.H{"error": "Product not found"})
		return 0, false
	}
	return id, true
}

func productTree(p models.ProductResponse) gin.H {
	return gin.H{"id": p.ID, "name": p.Name, "price": p.Price}
}

func storeError(err error) gin.H {
	return gin.H{"error": "Database error", "details": err.Error()}
}
