package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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

//
// ---------- STUBS & FAKES ----------
//

// stubUsers implements user.Repository in memory.
type stubUsers struct {
	mu   sync.Mutex
	byID map[string]*user.User
}

func newStubUsers() *stubUsers { return &stubUsers{byID: map[string]*user.User{}} }

func (s *stubUsers) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.byID {
		if e.Email == u.Email {
			return user.ErrAlreadyExist
		}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.byID[u.ID] = &cp
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUsers) UpdateName(ctx context.Context, id, name string) (*user.User, error) {
	s.mu.Lock()
	u, ok := s.byID[id]
	if ok && name != "" {
		u.Name = name
	}
	s.mu.Unlock()
	if !ok {
		return nil, user.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *stubUsers) UpdatePassword(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *stubUsers) SetOTP(_ context.Context, email, otp string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			u.OTP = &otp
			u.OTPExpiresAt = &exp
			return nil
		}
	}
	return user.ErrNotFound
}

func (s *stubUsers) ClearOTP(_ context.Context, email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			u.PasswordHash = hash
			u.OTP = nil
			u.OTPExpiresAt = nil
			return nil
		}
	}
	return user.ErrNotFound
}

// stubProducts implements product.Repository in memory.
type stubProducts struct {
	items     map[string]*product.Product
	lastQuery product.Query
}

func newStubProducts() *stubProducts { return &stubProducts{items: map[string]*product.Product{}} }

func (s *stubProducts) Create(_ context.Context, p *product.Product) error {
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) List(_ context.Context, q product.Query) ([]product.Product, error) {
	s.lastQuery = q
	out := make([]product.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProducts) Featured(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0, len(s.items))
	for _, p := range s.items {
		if len(out) == 4 {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProducts) Update(_ context.Context, p *product.Product) error {
	if _, ok := s.items[p.ID]; !ok {
		return product.ErrNotFound
	}
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// stubOrders implements order.Repository; PlaceOrder either fails with err or
// records the request.
type stubOrders struct {
	err        error
	lastUserID string
	lastReq    order.CheckoutRequest
	lastOrder  *order.Order
	statusErr  error
}

func (s *stubOrders) PlaceOrder(_ context.Context, userID string, req order.CheckoutRequest) (*order.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUserID = userID
	s.lastReq = req
	o := &order.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		ShippingName:    req.ShippingName,
		ShippingAddress: req.ShippingAddress,
		ShippingPhone:   req.ShippingPhone,
		PaymentSlipURL:  req.PaymentSlipURL,
		TotalAmount:     "0",
		Status:          order.StatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	s.lastOrder = o
	return o, nil
}

func (s *stubOrders) ListByUser(_ context.Context, userID string) ([]order.OrderWithItems, error) {
	if s.lastOrder != nil && s.lastOrder.UserID == userID {
		return []order.OrderWithItems{{Order: *s.lastOrder}}, nil
	}
	return []order.OrderWithItems{}, nil
}

func (s *stubOrders) GetForUser(_ context.Context, userID, orderID string) (*order.OrderWithItems, error) {
	if s.lastOrder == nil || s.lastOrder.ID != orderID || s.lastOrder.UserID != userID {
		return nil, order.ErrNotFound
	}
	return &order.OrderWithItems{Order: *s.lastOrder}, nil
}

func (s *stubOrders) ListAll(_ context.Context) ([]order.OrderWithItems, error) {
	if s.lastOrder != nil {
		return []order.OrderWithItems{{Order: *s.lastOrder}}, nil
	}
	return []order.OrderWithItems{}, nil
}

func (s *stubOrders) GetByID(_ context.Context, orderID string) (*order.OrderWithItems, error) {
	if s.lastOrder == nil || s.lastOrder.ID != orderID {
		return nil, order.ErrNotFound
	}
	return &order.OrderWithItems{Order: *s.lastOrder}, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, orderID, status, provider, tracking string) (*order.Order, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	if s.lastOrder == nil || s.lastOrder.ID != orderID {
		return nil, order.ErrNotFound
	}
	s.lastOrder.Status = status
	if provider != "" {
		s.lastOrder.ShippingProvider = &provider
	}
	if tracking != "" {
		s.lastOrder.TrackingNumber = &tracking
	}
	cp := *s.lastOrder
	return &cp, nil
}

// stubCategories / stubBrands
type stubCategories struct{ items []category.Category }

func (s *stubCategories) Create(_ context.Context, c *category.Category) error {
	for _, e := range s.items {
		if e.Name == c.Name {
			return category.ErrAlreadyExist
		}
	}
	s.items = append(s.items, *c)
	return nil
}

func (s *stubCategories) List(_ context.Context) ([]category.Category, error) {
	return append([]category.Category(nil), s.items...), nil
}

func (s *stubCategories) Delete(_ context.Context, id string) (bool, error) {
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubBrands struct{ items []brand.Brand }

func (s *stubBrands) Create(_ context.Context, b *brand.Brand) error {
	s.items = append(s.items, *b)
	return nil
}

func (s *stubBrands) List(_ context.Context) ([]brand.Brand, error) {
	return append([]brand.Brand(nil), s.items...), nil
}

func (s *stubBrands) Delete(_ context.Context, id string) (bool, error) {
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// stubAddresses
type stubAddresses struct{ items map[string]*address.Address }

func newStubAddresses() *stubAddresses { return &stubAddresses{items: map[string]*address.Address{}} }

func (s *stubAddresses) Create(_ context.Context, a *address.Address) error {
	if a.IsDefault {
		for _, e := range s.items {
			if e.UserID == a.UserID {
				e.IsDefault = false
			}
		}
	}
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *stubAddresses) ListByUser(_ context.Context, userID string) ([]address.Address, error) {
	var out []address.Address
	for _, a := range s.items {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubAddresses) Update(_ context.Context, a *address.Address) error {
	e, ok := s.items[a.ID]
	if !ok || e.UserID != a.UserID {
		return address.ErrNotFound
	}
	cp := *a
	s.items[a.ID] = &cp
	return nil
}

func (s *stubAddresses) Delete(_ context.Context, userID, id string) (bool, error) {
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// stubContacts
type stubContacts struct{ items []contact.Message }

func (s *stubContacts) Create(_ context.Context, m *contact.Message) error {
	m.CreatedAt = time.Now()
	s.items = append(s.items, *m)
	return nil
}

func (s *stubContacts) List(_ context.Context) ([]contact.Message, error) {
	return append([]contact.Message(nil), s.items...), nil
}

func (s *stubContacts) MarkRead(_ context.Context, id string) (*contact.Message, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsRead = true
			cp := s.items[i]
			return &cp, nil
		}
	}
	return nil, contact.ErrNotFound
}

func (s *stubContacts) Delete(_ context.Context, id string) (bool, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// stubDashboard
type stubDashboard struct{ stats dashboard.Stats }

func (s *stubDashboard) GetStats(_ context.Context, _, _ *time.Time) (*dashboard.Stats, error) {
	cp := s.stats
	return &cp, nil
}

// stubMailer records sent messages.
type stubMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (s *stubMailer) Send(_ context.Context, m mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
	return nil
}

//
// ---------- TEST SERVER ----------
//

type testEnv struct {
	srv       *server
	router    http.Handler
	users     *stubUsers
	products  *stubProducts
	orders    *stubOrders
	cats      *stubCategories
	brands    *stubBrands
	addresses *stubAddresses
	contacts  *stubContacts
	mail      *stubMailer
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		users:     newStubUsers(),
		products:  newStubProducts(),
		orders:    &stubOrders{},
		cats:      &stubCategories{},
		brands:    &stubBrands{},
		addresses: newStubAddresses(),
		contacts:  &stubContacts{},
		mail:      &stubMailer{},
	}
	env.srv = &server{
		cfg: config.Config{
			FrontendURL:      "http://localhost:3000",
			BackendURL:       "http://localhost:4000",
			UploadDir:        "testdata", // handlers that touch disk are not exercised here
			ContactRecipient: "admin@ieh.example",
		},
		issuer:     auth.NewTokenIssuer("test-secret"),
		mail:       env.mail,
		users:      env.users,
		products:   env.products,
		categories: env.cats,
		brands:     env.brands,
		orders:     env.orders,
		addresses:  env.addresses,
		contacts:   env.contacts,
		dashboard:  &stubDashboard{},
	}
	env.router = env.srv.router()
	return env
}

// seedUser registers a user directly in the stub store and returns its id
// and an auth cookie.
func (e *testEnv) seedUser(role string) (string, *http.Cookie) {
	id := uuid.NewString()
	hash, _ := auth.HashPassword("password123")
	_ = e.users.Create(context.Background(), &user.User{
		ID:           id,
		Name:         "Test " + role,
		Email:        fmt.Sprintf("%s@ieh.example", id[:8]),
		PasswordHash: hash,
		Role:         role,
		Provider:     user.ProviderLocal,
		IsVerified:   true,
	})
	tok, _ := e.srv.issuer.Sign(id, id[:8]+"@ieh.example", role)
	return id, &http.Cookie{Name: httpx.TokenCookie, Value: tok}
}

func newBody(s string) *strings.Reader { return strings.NewReader(s) }

func doJSON(h http.Handler, method, url, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, newBody(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	h.ServeHTTP(w, req)
	return w
}
