package cart

import (
	"testing"

	"github.com/angelmondragon/izishop-backend/internal/catalog"
	"github.com/angelmondragon/izishop-backend/pkg/config"
	"github.com/angelmondragon/izishop-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price types.Cents, stock int) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, Price: price, Stock: stock, Tags: []string{"t"}}
}

func applyAll(s State, ms ...Mutation) State {
	for _, m := range ms {
		s = Apply(DefaultPolicy(), s, m)
	}
	return s
}

func TestScenarioAddMergeAndSetZero(t *testing.T) {
	a := product("A", 5000, 10)

	s := applyAll(Empty(), AddItem{Product: a, Quantity: 1})
	assert.Equal(t, Totals{Subtotal: 5000, Shipping: 999, Tax: 1000, Total: 6999}, s.Cart.Totals)

	s = applyAll(s, AddItem{Product: a, Quantity: 2})
	require.Len(t, s.Cart.Items, 1)
	assert.Equal(t, 3, s.Cart.Items[0].Quantity)
	assert.Equal(t, Totals{Subtotal: 15000, Shipping: 0, Tax: 3000, Total: 18000}, s.Cart.Totals)

	s = applyAll(s, SetQuantity{ProductID: "A", Quantity: 0})
	assert.Empty(t, s.Cart.Items)
	assert.Equal(t, Totals{}, s.Cart.Totals)
}

func TestShippingThresholdIsStrictlyGreater(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, types.Cents(999), p.Shipping(10000))
	assert.Equal(t, types.Cents(0), p.Shipping(10001))
	assert.Equal(t, types.Cents(999), p.Shipping(1))

	s := applyAll(Empty(), AddItem{Product: product("A", 10000, 5), Quantity: 1})
	assert.Equal(t, types.Cents(999), s.Cart.Shipping)
	assert.Equal(t, types.Cents(10000+999+2000), s.Cart.Total)
}

func TestFreeShippingRemaining(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, types.Cents(10001), p.FreeShippingRemaining(0))
	assert.Equal(t, types.Cents(1), p.FreeShippingRemaining(10000))
	assert.Equal(t, types.Cents(0), p.FreeShippingRemaining(10001))
}

func TestTaxRoundsHalfUp(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, types.Cents(1), p.Tax(3)) // 0.6
	assert.Equal(t, types.Cents(0), p.Tax(2)) // 0.4
	assert.Equal(t, types.Cents(2), p.Tax(8)) // 1.6

	half := Policy{TaxRate: decimal.RequireFromString("0.5")}
	assert.Equal(t, types.Cents(2), half.Tax(3)) // 1.5
	assert.Equal(t, types.Cents(3), half.Tax(5)) // 2.5, not banker's rounding
}

func TestAddToExistingLineSumsQuantity(t *testing.T) {
	a, b := product("A", 100, 10), product("B", 200, 10)
	s := applyAll(Empty(),
		AddItem{Product: a, Quantity: 1},
		AddItem{Product: b, Quantity: 1},
		AddItem{Product: a, Quantity: 4},
	)
	require.Len(t, s.Cart.Items, 2)
	assert.Equal(t, "A", s.Cart.Items[0].ProductID, "insertion order is kept")
	assert.Equal(t, 5, s.Cart.Items[0].Quantity)
	assert.Equal(t, 6, s.Cart.ItemCount())
}

func TestArithmeticInvariantsHoldAfterEveryMutation(t *testing.T) {
	a, b, c := product("A", 1999, 10), product("B", 4550, 10), product("C", 12000, 10)
	steps := []Mutation{
		AddItem{Product: a, Quantity: 2},
		AddItem{Product: b, Quantity: 1},
		ToggleOpen{},
		SetQuantity{ProductID: "A", Quantity: 5},
		AddItem{Product: c, Quantity: 1},
		RemoveItem{ProductID: "B"},
		RemoveItem{ProductID: "missing"},
		SetQuantity{ProductID: "missing", Quantity: 3},
		SetQuantity{ProductID: "C", Quantity: -1},
		Clear{},
		AddItem{Product: b, Quantity: 3},
	}
	s := Empty()
	for i, m := range steps {
		s = Apply(DefaultPolicy(), s, m)
		var subtotal types.Cents
		seen := map[string]bool{}
		for _, item := range s.Cart.Items {
			if item.Quantity < 1 {
				t.Fatalf("step %d: line %s has quantity %d", i, item.ProductID, item.Quantity)
			}
			if seen[item.ProductID] {
				t.Fatalf("step %d: duplicate line %s", i, item.ProductID)
			}
			seen[item.ProductID] = true
			subtotal += item.Product.Price.Times(item.Quantity)
		}
		assert.Equal(t, ComputeTotals(DefaultPolicy(), s.Cart.Items), s.Cart.Totals, "step %d", i)
		assert.Equal(t, subtotal, s.Cart.Subtotal, "step %d", i)
		assert.Equal(t, s.Cart.Subtotal+s.Cart.Shipping+s.Cart.Tax, s.Cart.Total, "step %d", i)
	}
}

func TestRemoveAndSetQuantityOnAbsentAreNoops(t *testing.T) {
	s := applyAll(Empty(), AddItem{Product: product("A", 100, 10), Quantity: 1})
	before := s
	assert.Equal(t, before, applyAll(s, RemoveItem{ProductID: "Z"}))
	assert.Equal(t, before, applyAll(s, SetQuantity{ProductID: "Z", Quantity: 4}))
}

func TestSetQuantityNonPositiveEqualsRemove(t *testing.T) {
	s := applyAll(Empty(),
		AddItem{Product: product("A", 100, 10), Quantity: 2},
		AddItem{Product: product("B", 300, 10), Quantity: 1},
	)
	removed := applyAll(s, RemoveItem{ProductID: "A"})
	for _, q := range []int{0, -1, -50} {
		assert.Equal(t, removed, applyAll(s, SetQuantity{ProductID: "A", Quantity: q}))
	}
}

func TestClearZeroesEverything(t *testing.T) {
	s := applyAll(Empty(), AddItem{Product: product("A", 100, 10), Quantity: 2}, ToggleOpen{}, Clear{})
	assert.Empty(t, s.Cart.Items)
	assert.NotNil(t, s.Cart.Items)
	assert.Equal(t, Totals{}, s.Cart.Totals)
	assert.True(t, s.Open, "clear does not touch the open flag")
}

func TestToggleOpenLeavesCartAlone(t *testing.T) {
	s := applyAll(Empty(), AddItem{Product: product("A", 100, 10), Quantity: 2})
	toggled := applyAll(s, ToggleOpen{})
	assert.True(t, toggled.Open)
	assert.Equal(t, s.Cart, toggled.Cart)
	assert.False(t, applyAll(toggled, ToggleOpen{}).Open)
}

func TestAddNonPositiveQuantityIsIgnored(t *testing.T) {
	s := applyAll(Empty(), AddItem{Product: product("A", 100, 10), Quantity: 0}, AddItem{Product: product("B", 100, 10), Quantity: -2})
	assert.Empty(t, s.Cart.Items)
	assert.Equal(t, Totals{}, s.Cart.Totals)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := applyAll(Empty(), AddItem{Product: product("A", 100, 10), Quantity: 1}, AddItem{Product: product("B", 100, 10), Quantity: 1})
	snapshot := s.clone()

	_ = Apply(DefaultPolicy(), s, AddItem{Product: product("A", 100, 10), Quantity: 3})
	_ = Apply(DefaultPolicy(), s, RemoveItem{ProductID: "A"})
	_ = Apply(DefaultPolicy(), s, SetQuantity{ProductID: "B", Quantity: 7})
	_ = Apply(DefaultPolicy(), s, Clear{})

	assert.Equal(t, snapshot, s)
}

func TestLineItemEmbedsProductCopy(t *testing.T) {
	p := product("A", 100, 10)
	s := applyAll(Empty(), AddItem{Product: p, Quantity: 1})
	p.Tags[0] = "changed"
	assert.Equal(t, "t", s.Cart.Items[0].Product.Tags[0])
}

func TestEmptyCartHasZeroTotals(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(DefaultPolicy(), nil))
	assert.Equal(t, Totals{}, Empty().Cart.Totals)
}

func TestPolicyFromConfig(t *testing.T) {
	p, err := PolicyFromConfig(config.PricingConfig{FlatShippingCents: 499, FreeShippingThresholdCents: 5000, TaxRate: "0.055"})
	require.NoError(t, err)
	assert.Equal(t, types.Cents(499), p.Shipping(5000))
	assert.Equal(t, types.Cents(0), p.Shipping(5001))
	assert.Equal(t, types.Cents(55), p.Tax(1000))

	_, err = PolicyFromConfig(config.PricingConfig{TaxRate: "abc"})
	assert.Error(t, err)
	_, err = PolicyFromConfig(config.PricingConfig{FlatShippingCents: -1, TaxRate: "0.2"})
	assert.Error(t, err)
}
