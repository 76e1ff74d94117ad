package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ieh-shop/backend/internal/address"
	"github.com/ieh-shop/backend/internal/auth"
	"github.com/ieh-shop/backend/internal/brand"
	"github.com/ieh-shop/backend/internal/category"
	"github.com/ieh-shop/backend/internal/config"
	"github.com/ieh-shop/backend/internal/contact"
	"github.com/ieh-shop/backend/internal/dashboard"
	"github.com/ieh-shop/backend/internal/httpx"
	"github.com/ieh-shop/backend/internal/mailer"
	"github.com/ieh-shop/backend/internal/order"
	"github.com/ieh-shop/backend/internal/product"
	"github.com/ieh-shop/backend/internal/user"
)

// server bundles every collaborator the handlers need; tests build one with
// in-memory stubs.
type server struct {
	cfg        config.Config
	issuer     *auth.TokenIssuer
	mail       mailer.Mailer
	users      user.Repository
	products   product.Repository
	categories category.Repository
	brands     brand.Repository
	orders     order.Repository
	addresses  address.Repository
	contacts   contact.Repository
	dashboard  dashboard.Repository
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(s.cfg.FrontendURL))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static("/uploads", s.cfg.UploadDir)

	authed := httpx.Auth(s.issuer)
	admin := httpx.AdminOnly()

	ar := r.Group("/auth")
	{
		ar.POST("/register", s.register)
		ar.POST("/login", s.login)
		ar.POST("/logout", s.logout)
		ar.POST("/forgot-password", s.forgotPassword)
		ar.POST("/reset-password", s.resetPassword)
		ar.GET("/profile", authed, s.profile)
	}

	ur := r.Group("/user", authed)
	{
		ur.GET("/profile", s.profile)
		ur.PATCH("/profile", s.updateProfile)
		ur.PATCH("/password", s.changePassword)
	}

	pr := r.Group("/products")
	{
		pr.GET("", s.listProducts)
		pr.GET("/featured", s.featuredProducts)
		pr.GET("/:id", s.getProduct)
		pr.POST("", authed, admin, s.createProduct)
		pr.PATCH("/:id", authed, admin, s.updateProduct)
		pr.DELETE("/:id", authed, admin, s.deleteProduct)
		pr.POST("/upload", authed, admin, s.uploadProductImage)
	}

	cr := r.Group("/categories")
	{
		cr.GET("", s.listCategories)
		cr.POST("", authed, admin, s.createCategory)
		cr.DELETE("/:id", authed, admin, s.deleteCategory)
	}

	br := r.Group("/brands")
	{
		br.GET("", s.listBrands)
		br.POST("", authed, admin, s.createBrand)
		br.DELETE("/:id", authed, admin, s.deleteBrand)
	}

	or := r.Group("/orders", authed)
	{
		or.POST("", s.checkout)
		or.POST("/upload-slip", s.uploadSlip)
		or.GET("/my-orders", s.myOrders)
		or.GET("/my-orders/:id", s.myOrderByID)
		or.GET("/all", admin, s.allOrders)
		or.GET("/:id", admin, s.orderByID)
		or.PATCH("/:id/status", admin, s.updateOrderStatus)
	}

	adr := r.Group("/address", authed)
	{
		adr.POST("", s.createAddress)
		adr.GET("", s.listAddresses)
		adr.PATCH("/:id", s.updateAddress)
		adr.DELETE("/:id", s.deleteAddress)
	}

	cn := r.Group("/contact")
	{
		cn.POST("", s.createContact)
		cn.GET("", authed, admin, s.listContacts)
		cn.PATCH("/:id/read", authed, admin, s.markContactRead)
		cn.DELETE("/:id", authed, admin, s.deleteContact)
	}

	r.GET("/dashboard/stats", authed, admin, s.dashboardStats)

	return r
}
