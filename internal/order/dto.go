package order

// CartLine is one product/quantity pairing of a checkout payload.
// swagger:model CartLine
type CartLine struct {
	ID       string `json:"id"       example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity int    `json:"quantity" example:"2"`
}

// CheckoutRequest payload de creación de orden.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	ShippingName    string     `json:"shippingName"    binding:"required"`
	ShippingAddress string     `json:"shippingAddress" binding:"required"`
	ShippingPhone   string     `json:"shippingPhone"   binding:"required"`
	PaymentSlipURL  string     `json:"paymentSlipUrl"  binding:"required"`
	CartItems       []CartLine `json:"cartItems"`
}

// UpdateStatusRequest admin status transition payload.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status           string `json:"status" binding:"required"`
	ShippingProvider string `json:"shippingProvider"`
	TrackingNumber   string `json:"trackingNumber"`
}
