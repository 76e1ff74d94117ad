package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ieh-shop/backend/internal/brand"
	"github.com/ieh-shop/backend/internal/category"
)

type createNameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *server) listCategories(c *gin.Context) {
	out, err := s.categories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []category.Category{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createCategory(c *gin.Context) {
	var req createNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat := &category.Category{ID: uuid.NewString(), Name: req.Name}
	if err := s.categories.Create(c.Request.Context(), cat); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (s *server) deleteCategory(c *gin.Context) {
	ok, err := s.categories.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "category is still referenced by products"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *server) listBrands(c *gin.Context) {
	out, err := s.brands.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []brand.Brand{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createBrand(c *gin.Context) {
	var req createNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := &brand.Brand{ID: uuid.NewString(), Name: req.Name}
	if err := s.brands.Create(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "brand already exists"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *server) deleteBrand(c *gin.Context) {
	ok, err := s.brands.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "brand is still referenced by products"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
