package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ieh-shop/backend/internal/auth"
	"github.com/ieh-shop/backend/internal/httpx"
	"github.com/ieh-shop/backend/internal/mailer"
	"github.com/ieh-shop/backend/internal/user"
)

// RegisterRequest payload for account creation.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest payload for credential login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *server) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	secure := strings.HasPrefix(s.cfg.BackendURL, "https://")
	c.SetCookie(httpx.TokenCookie, token, int(auth.TokenTTL.Seconds()), "/", "", secure, true)
}

func (s *server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
		return
	}
	u := &user.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleUser,
		Provider:     user.ProviderLocal,
		IsVerified:   true,
	}
	if err := s.users.Create(c.Request.Context(), u); err != nil {
		if err == user.ErrAlreadyExist {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := s.issuer.Sign(u.ID, u.Email, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}
	s.setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

func (s *server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.issuer.Sign(u.ID, u.Email, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}
	s.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "role": u.Role})
}

func (s *server) logout(c *gin.Context) {
	c.SetCookie(httpx.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// forgotPassword always answers the same message so the endpoint cannot be
// used to probe registered emails.
func (s *server) forgotPassword(c *gin.Context) {
	const reply = "If a matching account was found, an email has been sent."

	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": reply})
		return
	}

	otp := auth.NewOTP()
	if err := s.users.SetOTP(c.Request.Context(), req.Email, otp, time.Now().Add(auth.OTPTTL)); err != nil {
		log.Printf("[auth] set otp failed email=%s err=%v", req.Email, err)
		c.JSON(http.StatusOK, gin.H{"message": reply})
		return
	}

	if s.mail != nil {
		// failures are logged by the mailer; the caller still gets the neutral reply
		_ = s.mail.Send(c.Request.Context(), mailer.Message{
			ToEmail: u.Email,
			ToName:  u.Name,
			Subject: "Your Password Reset Code for IEH Website",
			HTML:    mailer.OTPEmailHTML(otp),
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": reply})
}

func (s *server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || u.OTP == nil || u.OTPExpiresAt == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid request."})
		return
	}
	if *u.OTP != req.OTP || time.Now().After(*u.OTPExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP."})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
		return
	}
	if err := s.users.ClearOTP(c.Request.Context(), req.Email, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully."})
}

func (s *server) profile(c *gin.Context) {
	u, err := s.users.GetByID(c.Request.Context(), c.GetString(httpx.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
