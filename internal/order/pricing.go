package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product in cart not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError identifies the product whose stock could not cover the cart.
type StockError struct {
	ProductName string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: %s", e.ProductName)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

// StockedProduct is the slice of a product row the checkout needs: current
// price, discount and stock as read inside the checkout transaction.
type StockedProduct struct {
	ID       string
	NameTH   string
	NameEN   string
	Price    decimal.Decimal
	Discount int
	Stock    int
}

var oneHundred = decimal.NewFromInt(100)

// UnitPrice applies the percentage discount to the list price with full
// decimal precision, no rounding.
func (p StockedProduct) UnitPrice() decimal.Decimal {
	factor := oneHundred.Sub(decimal.NewFromInt(int64(p.Discount))).Div(oneHundred)
	return p.Price.Mul(factor)
}

// buildLines validates the cart against the given product snapshots and
// assembles the order item snapshots plus the order total. It performs no
// I/O; the caller runs it inside the checkout transaction so the stock it
// sees is the stock that will be decremented.
func buildLines(cart []CartLine, products map[string]StockedProduct) ([]Item, decimal.Decimal, error) {
	if len(cart) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]Item, 0, len(cart))
	for _, line := range cart {
		p, ok := products[line.ID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrProductNotFound, line.ID)
		}
		if line.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("invalid quantity for product %s", line.ID)
		}
		if p.Stock < line.Quantity {
			return nil, decimal.Zero, &StockError{ProductName: p.NameTH}
		}

		unit := p.UnitPrice()
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Name:      p.NameTH + " / " + p.NameEN,
			Price:     unit.String(),
			Quantity:  line.Quantity,
		})
	}
	return items, total, nil
}
