package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ieh-shop/backend/internal/contact"
	"github.com/ieh-shop/backend/internal/mailer"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// createContact persists the message first; email forwarding is best-effort
// and never fails the request.
func (s *server) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := &contact.Message{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contacts.Create(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.mail != nil && s.cfg.ContactRecipient != "" {
		_ = s.mail.Send(c.Request.Context(), mailer.Message{
			ToEmail:   s.cfg.ContactRecipient,
			ToName:    "Admin",
			ReplyTo:   req.Email,
			ReplyName: req.Name,
			Subject:   "New Contact Message: " + req.Subject,
			HTML:      mailer.ContactEmailHTML(req.Name, req.Email, req.Subject, req.Message),
		})
	}
	c.JSON(http.StatusCreated, m)
}

func (s *server) listContacts(c *gin.Context) {
	out, err := s.contacts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []contact.Message{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) markContactRead(c *gin.Context) {
	m, err := s.contacts.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *server) deleteContact(c *gin.Context) {
	ok, err := s.contacts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
