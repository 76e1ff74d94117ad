package main

import (
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ieh-shop/backend/internal/product"
)

func (s *server) listProducts(c *gin.Context) {
	q := product.Query{
		Search:     c.Query("search"),
		CategoryID: c.Query("category"),
		BrandID:    c.Query("brand"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
		SortBy:     c.Query("sortBy"),
		Order:      c.Query("order"),
	}
	out, err := s.products.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []product.Product{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) featuredProducts(c *gin.Context) {
	out, err := s.products.Featured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []product.Product{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func (s *server) createProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NameTH == "" || req.NameEN == "" || req.CategoryID == "" || req.BrandID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_th, name_en, category_id and brand_id are required"})
		return
	}
	if !validPrice(req.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}
	if req.Discount < 0 || req.Discount > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be between 0 and 100"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be non-negative"})
		return
	}

	p := &product.Product{
		ID:            uuid.NewString(),
		NameTH:        req.NameTH,
		NameEN:        req.NameEN,
		DescriptionTH: req.DescriptionTH,
		DescriptionEN: req.DescriptionEN,
		SpecsTH:       req.SpecsTH,
		SpecsEN:       req.SpecsEN,
		Price:         req.Price,
		Discount:      req.Discount,
		Stock:         req.Stock,
		ImageURLs:     req.ImageURLs,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
	}
	if p.SpecsTH == nil {
		p.SpecsTH = []string{}
	}
	if p.SpecsEN == nil {
		p.SpecsEN = []string{}
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if err := s.products.Create(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *server) updateProduct(c *gin.Context) {
	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := s.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	// image set changed: remove files dropped from the product before the row
	// is rewritten, so the admin UI never shows dangling URLs
	if req.ImageURLs != nil {
		s.removeOrphanedImages(p.ImageURLs, *req.ImageURLs)
		p.ImageURLs = *req.ImageURLs
	}
	if req.NameTH != "" {
		p.NameTH = req.NameTH
	}
	if req.NameEN != "" {
		p.NameEN = req.NameEN
	}
	if req.DescriptionTH != "" {
		p.DescriptionTH = req.DescriptionTH
	}
	if req.DescriptionEN != "" {
		p.DescriptionEN = req.DescriptionEN
	}
	if req.SpecsTH != nil {
		p.SpecsTH = *req.SpecsTH
	}
	if req.SpecsEN != nil {
		p.SpecsEN = *req.SpecsEN
	}
	if req.Price != "" {
		if !validPrice(req.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		p.Price = req.Price
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be between 0 and 100"})
			return
		}
		p.Discount = *req.Discount
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be non-negative"})
			return
		}
		p.Stock = *req.Stock
	}
	if req.CategoryID != "" {
		p.CategoryID = req.CategoryID
	}
	if req.BrandID != "" {
		p.BrandID = req.BrandID
	}

	if err := s.products.Update(c.Request.Context(), p); err != nil {
		if err == product.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *server) deleteProduct(c *gin.Context) {
	p, err := s.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	s.removeOrphanedImages(p.ImageURLs, nil)

	ok, err := s.products.Delete(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// removeOrphanedImages deletes uploaded files present in old but absent from
// keep. A missing file is logged and skipped.
func (s *server) removeOrphanedImages(old, keep []string) {
	kept := make(map[string]bool, len(keep))
	for _, u := range keep {
		kept[u] = true
	}
	for _, u := range old {
		if kept[u] {
			continue
		}
		name := path.Base(u)
		if name == "" || name == "." || name == "/" {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.UploadDir, name)); err != nil {
			log.Printf("[upload] failed to delete file for URL %s: %v", u, err)
		}
	}
}
