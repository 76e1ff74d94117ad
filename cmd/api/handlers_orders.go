package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieh-shop/backend/internal/httpx"
	"github.com/ieh-shop/backend/internal/order"
)

// checkout places an order from the caller's cart. All stock checks, price
// computation and the stock decrement happen in one database transaction;
// a failed line leaves every product untouched.
func (s *server) checkout(c *gin.Context) {
	var req order.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.orders.PlaceOrder(c.Request.Context(), c.GetString(httpx.CtxUserID), req)
	if err != nil {
		var stockErr *order.StockError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty."})
		case errors.Is(err, order.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Some products in the cart were not found."})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock for product: " + stockErr.ProductName})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (s *server) myOrders(c *gin.Context) {
	out, err := s.orders.ListByUser(c.Request.Context(), c.GetString(httpx.CtxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []order.OrderWithItems{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) myOrderByID(c *gin.Context) {
	o, err := s.orders.GetForUser(c.Request.Context(), c.GetString(httpx.CtxUserID), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or you do not have permission to view it."})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *server) allOrders(c *gin.Context) {
	out, err := s.orders.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []order.OrderWithItems{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) orderByID(c *gin.Context) {
	o, err := s.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *server) updateOrderStatus(c *gin.Context) {
	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := order.ValidateStatusChange(req.Status, req.ShippingProvider, req.TrackingNumber); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.ShippingProvider, req.TrackingNumber)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}
