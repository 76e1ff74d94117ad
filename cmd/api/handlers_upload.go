package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// uploadProductImage stores an admin-uploaded catalog image under the upload
// dir and returns its public URL.
func (s *server) uploadProductImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed!"})
		return
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	name := fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed"})
		return
	}

	rel := "/uploads/" + name
	c.JSON(http.StatusCreated, gin.H{"url": rel, "fullUrl": s.cfg.BackendURL + rel})
}

// uploadSlip stores a payment slip for a pending checkout.
func (s *server) uploadSlip(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("slip-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, "slips", name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Slip upload failed"})
		return
	}

	rel := "/uploads/slips/" + name
	c.JSON(http.StatusCreated, gin.H{"url": rel, "fullUrl": s.cfg.BackendURL + rel})
}
