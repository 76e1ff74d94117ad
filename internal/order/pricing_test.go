package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testProducts(t *testing.T) map[string]StockedProduct {
	return map[string]StockedProduct{
		"p1": {ID: "p1", NameTH: "คีย์บอร์ด", NameEN: "Keyboard", Price: mustDec(t, "100"), Discount: 20, Stock: 5},
		"p2": {ID: "p2", NameTH: "เมาส์", NameEN: "Mouse", Price: mustDec(t, "59.50"), Discount: 0, Stock: 2},
	}
}

func TestBuildLines_EmptyCart(t *testing.T) {
	_, _, err := buildLines(nil, testProducts(t))
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, _, err = buildLines([]CartLine{}, testProducts(t))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildLines_UnknownProduct(t *testing.T) {
	_, _, err := buildLines([]CartLine{
		{ID: "p1", Quantity: 1},
		{ID: "missing", Quantity: 1},
	}, testProducts(t))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBuildLines_InsufficientStockNamesProduct(t *testing.T) {
	// p1 has enough stock, p2 does not; the whole build fails naming p2
	_, _, err := buildLines([]CartLine{
		{ID: "p1", Quantity: 2},
		{ID: "p2", Quantity: 3},
	}, testProducts(t))
	require.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "เมาส์", stockErr.ProductName)
}

func TestBuildLines_InvalidQuantity(t *testing.T) {
	_, _, err := buildLines([]CartLine{{ID: "p1", Quantity: 0}}, testProducts(t))
	assert.Error(t, err)

	_, _, err = buildLines([]CartLine{{ID: "p1", Quantity: -2}}, testProducts(t))
	assert.Error(t, err)
}

func TestBuildLines_DiscountMath(t *testing.T) {
	// price 100 with discount 20 -> unit 80; quantity 3 -> line total 240
	items, total, err := buildLines([]CartLine{{ID: "p1", Quantity: 3}}, testProducts(t))
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.True(t, mustDec(t, "80").Equal(mustDec(t, items[0].Price)), "unit price %s", items[0].Price)
	assert.True(t, mustDec(t, "240").Equal(total), "total %s", total)
	assert.Equal(t, "คีย์บอร์ด / Keyboard", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestBuildLines_TotalIsSumOfLines(t *testing.T) {
	items, total, err := buildLines([]CartLine{
		{ID: "p1", Quantity: 2},
		{ID: "p2", Quantity: 1},
	}, testProducts(t))
	require.NoError(t, err)
	require.Len(t, items, 2)

	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(mustDec(t, it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, sum.Equal(total), "sum=%s total=%s", sum, total)
	// 2*80 + 1*59.50
	assert.True(t, mustDec(t, "219.50").Equal(total), "total %s", total)

	// items keep cart input order
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestUnitPrice_FullAndZeroDiscount(t *testing.T) {
	p := StockedProduct{Price: mustDec(t, "199.90"), Discount: 0}
	assert.True(t, mustDec(t, "199.90").Equal(p.UnitPrice()))

	p.Discount = 100
	assert.True(t, p.UnitPrice().IsZero())
}

func TestValidateStatusChange(t *testing.T) {
	assert.NoError(t, ValidateStatusChange(StatusPending, "", ""))
	assert.NoError(t, ValidateStatusChange(StatusDelivered, "", ""))
	assert.NoError(t, ValidateStatusChange(StatusCancelled, "", ""))
	assert.NoError(t, ValidateStatusChange(StatusShipped, "Kerry", "TH12345"))

	assert.ErrorIs(t, ValidateStatusChange(StatusShipped, "", "TH12345"), ErrShippingInfoRequired)
	assert.ErrorIs(t, ValidateStatusChange(StatusShipped, "Kerry", ""), ErrShippingInfoRequired)
	assert.Error(t, ValidateStatusChange("REFUNDED", "", ""))
}
