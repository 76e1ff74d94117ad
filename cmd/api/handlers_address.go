package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ieh-shop/backend/internal/address"
	"github.com/ieh-shop/backend/internal/httpx"
)

type addressRequest struct {
	RecipientName string `json:"recipientName" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	AddressLine1  string `json:"addressLine1" binding:"required"`
	District      string `json:"district" binding:"required"`
	Province      string `json:"province" binding:"required"`
	PostalCode    string `json:"postalCode" binding:"required"`
	IsDefault     bool   `json:"isDefault"`
}

func (s *server) createAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &address.Address{
		ID:            uuid.NewString(),
		UserID:        c.GetString(httpx.CtxUserID),
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		District:      req.District,
		Province:      req.Province,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	}
	if err := s.addresses.Create(c.Request.Context(), a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *server) listAddresses(c *gin.Context) {
	out, err := s.addresses.ListByUser(c.Request.Context(), c.GetString(httpx.CtxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []address.Address{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) updateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &address.Address{
		ID:            c.Param("id"),
		UserID:        c.GetString(httpx.CtxUserID),
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		District:      req.District,
		Province:      req.Province,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	}
	if err := s.addresses.Update(c.Request.Context(), a); err != nil {
		if errors.Is(err, address.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *server) deleteAddress(c *gin.Context) {
	ok, err := s.addresses.Delete(c.Request.Context(), c.GetString(httpx.CtxUserID), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
