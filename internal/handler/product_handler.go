package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/events"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/service"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/validation"
	"github.com/cloud-wave-best-zizon/product-inventory/pkg/middleware"
)

type ProductHandler struct {
	inventory service.Inventory
	validator *validation.Validator
	publisher events.Publisher
	logger    *zap.Logger
}

func NewProductHandler(inventory service.Inventory, validator *validation.Validator, publisher events.Publisher, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		inventory: inventory,
		validator: validator,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterRoutes mounts the product routes on group. Extra handlers, such as the
// interceptor logger, run in front of every product route.
func (h *ProductHandler) RegisterRoutes(group *gin.RouterGroup, handlers ...gin.HandlerFunc) {
	products := group.Group("/product", handlers...)
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("", h.CorrectProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
	group.GET("/health", h.Health)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	payload, ok := h.bindProduct(c)
	if !ok {
		return
	}

	product, _, err := h.inventory.Stock(c.Request.Context(), payload.Product())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.publish(c, events.NewProductEvent(events.ProductStocked, product.ID, &product, requestID(c)))
	c.JSON(http.StatusCreated, domain.ProductEnvelope(domain.MessageStocked, product))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	retrieval, err := h.inventory.RetrieveOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	product, found := retrieval.Product()
	if !found {
		c.JSON(http.StatusNotFound, domain.ProductEnvelope(domain.MessageProductNotFound))
		return
	}

	c.JSON(http.StatusOK, domain.ProductEnvelope(domain.MessageSuccess, product))
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.inventory.RetrieveAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, domain.ProductEnvelope(domain.MessageSuccess, products...))
}

// CorrectProduct replaces the product named by the id in the body.
func (h *ProductHandler) CorrectProduct(c *gin.Context) {
	payload, ok := h.bindProduct(c)
	if !ok {
		return
	}

	product := payload.Product()
	outcome, err := h.inventory.Correct(c.Request.Context(), product)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	if outcome == domain.NotFound {
		c.JSON(http.StatusNotFound, domain.ProductEnvelope(domain.MessageProductNotFound))
		return
	}

	h.publish(c, events.NewProductEvent(events.ProductCorrected, product.ID, &product, requestID(c)))
	c.JSON(http.StatusOK, domain.ProductEnvelope(domain.MessageCorrected, product))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	outcome, err := h.inventory.Unstock(c.Request.Context(), productID)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	if outcome == domain.NotFound {
		c.JSON(http.StatusNotFound, domain.ProductEnvelope(domain.MessageProductNotFound))
		return
	}

	h.publish(c, events.NewProductEvent(events.ProductUnstocked, productID, nil, requestID(c)))
	c.JSON(http.StatusOK, domain.ProductEnvelope(domain.MessageSuccess))
}

func (h *ProductHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// bindProduct decodes and validates the body. On rejection it has already written
// the 400 response.
func (h *ProductHandler) bindProduct(c *gin.Context) (domain.ProductPayload, bool) {
	var payload domain.ProductPayload

	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("Invalid request",
			zap.Error(err),
			zap.Any("violations", validation.Malformed()))
		c.JSON(http.StatusBadRequest, domain.ProductEnvelope(domain.MessageInvalidProduct))
		return payload, false
	}

	if err := h.validator.Product(payload); err != nil {
		h.logger.Warn("Invalid product", zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ProductEnvelope(domain.MessageInvalidProduct))
		return payload, false
	}

	return payload, true
}

// publish never fails the request; a lost event is logged and dropped.
func (h *ProductHandler) publish(c *gin.Context, event events.ProductEvent) {
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish product event",
			zap.String("event_id", event.EventID),
			zap.String("type", string(event.Type)),
			zap.String("product_id", event.ProductID),
			zap.Error(err))
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}
