package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// Handler contains the HTTP handlers. The HTTP surface is the boundary
// with the chat transport collaborator: each route corresponds to an
// inbound event kind (browse, cart action, checkout, forwarded post,
// feedback).
type Handler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	orders   *service.OrderService
	pipeline *service.IngestionPipeline
	csv      *service.CSVService
	notifier *service.Notifier
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	cart *service.CartService,
	orders *service.OrderService,
	pipeline *service.IngestionPipeline,
	csv *service.CSVService,
	notifier *service.Notifier,
) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		pipeline: pipeline,
		csv:      csv,
		notifier: notifier,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog/categories", h.listCategories)
		v1.GET("/catalog/categories/:category/brands", h.listBrands)
		v1.GET("/catalog/products", h.listProducts)
		v1.GET("/catalog/products/:id", h.getProduct)

		v1.POST("/ingest", h.ingestPost)

		v1.GET("/users/:id/feed", h.browseFeed)
		v1.POST("/users/:id/session/category", h.selectCategory)
		v1.POST("/users/:id/session/brand", h.selectBrand)
		v1.POST("/users/:id/session/filters", h.setFilters)
		v1.DELETE("/users/:id/session/filters", h.clearFilters)
		v1.DELETE("/users/:id/session", h.resetSession)

		v1.POST("/users/:id/cart", h.addToCart)
		v1.GET("/users/:id/cart", h.getCart)
		v1.DELETE("/users/:id/cart", h.clearCart)
		v1.POST("/users/:id/wardrobe", h.addToWardrobe)
		v1.GET("/users/:id/wardrobe", h.getWardrobe)

		v1.POST("/users/:id/checkout", h.checkout)
		v1.GET("/users/:id/orders", h.listOrders)
		v1.GET("/orders/:id/items", h.orderItems)

		v1.POST("/feedback", h.feedback)

		v1.GET("/admin/catalog.csv", h.exportCSV)
		v1.POST("/admin/catalog.csv", h.importCSV)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Unix()})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready", "time": time.Now().Unix()})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) listBrands(c *gin.Context) {
	brands, err := h.catalog.Brands(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *Handler) listProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		SizeQuery: c.Query("size"),
	}
	if v, err := strconv.ParseInt(c.Query("price_min"), 10, 64); err == nil {
		filter.PriceMin = &v
	}
	if v, err := strconv.ParseInt(c.Query("price_max"), 10, 64); err == nil {
		filter.PriceMax = &v
	}
	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, err := h.catalog.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ingestPost handles a manually forwarded post. Duplicates of already
// ingested channel posts resolve to the existing product.
func (h *Handler) ingestPost(c *gin.Context) {
	var post models.RawPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.pipeline.Ingest(c.Request.Context(), post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest post"})
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

func (h *Handler) browseFeed(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	offset, _ := strconv.Atoi(c.Query("offset"))

	products, err := h.catalog.Browse(c.Request.Context(), userID, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to browse catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "next_offset": offset + len(products)})
}

func (h *Handler) selectCategory(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	brands, err := h.catalog.SelectCategory(c.Request.Context(), userID, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *Handler) selectBrand(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Brand string `json:"brand" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.catalog.SelectBrand(c.Request.Context(), userID, req.Brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select brand"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setFilters(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		PriceMin *int64 `json:"price_min"`
		PriceMax *int64 `json:"price_max"`
		Size     string `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.catalog.SetFilters(c.Request.Context(), userID, req.PriceMin, req.PriceMax, req.Size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set filters"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearFilters(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.catalog.ClearFilters(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear filters"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) resetSession(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.catalog.ResetSession(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset session"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addToCart(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.cart.Add(c.Request.Context(), userID, req.ProductID)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getCart(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	lines, total, err := h.cart.Snapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": lines, "total": total})
}

func (h *Handler) clearCart(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.cart.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addToWardrobe(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.cart.SaveToWardrobe(c.Request.Context(), userID, req.ProductID)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save to wardrobe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getWardrobe(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	lines, err := h.cart.Wardrobe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wardrobe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": lines})
}

// checkout converts the cart to an order. An empty cart is not an
// error: the outcome is an informational message and nothing is
// created.
func (h *Handler) checkout(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	resp, err := h.orders.Checkout(c.Request.Context(), userID)
	if errors.Is(err, store.ErrEmptyCart) {
		c.JSON(http.StatusOK, gin.H{"message": "Cart is empty, nothing to order"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) listOrders(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) orderItems(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	items, err := h.orders.GetOrderItems(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) feedback(c *gin.Context) {
	var req struct {
		UserID int64  `json:"user_id" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	h.notifier.Feedback(c.Request.Context(), req.UserID, req.Text)
	c.JSON(http.StatusOK, gin.H{"message": "Feedback forwarded"})
}

func (h *Handler) exportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="catalog_export.csv"`)
	if err := h.csv.Export(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export catalog"})
	}
}

func (h *Handler) importCSV(c *gin.Context) {
	result, err := h.csv.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to import catalog", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func userIDParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return userID, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
