package cart

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vuhoangtran/shopcart-backend/internal/catalog"
	pkgerrors "github.com/vuhoangtran/shopcart-backend/pkg/errors"
)

// ProductSource is the read-only catalog surface the cart needs.
type ProductSource interface {
	ByName(name string) (catalog.Product, bool)
}

// View is a cart plus its derived display data.
type View struct {
	Items     Cart
	ItemCount int64
	Totals    Totals
}

type CheckoutStatus string

const (
	CheckoutCompleted CheckoutStatus = "completed"
	CheckoutCancelled CheckoutStatus = "cancelled"
	CheckoutRejected  CheckoutStatus = "rejected"
)

// CheckoutResult reports how a checkout attempt ended. Completed discards the
// cart; no order record is written anywhere. Cancelled and Rejected leave the
// slot untouched.
type CheckoutResult struct {
	Status CheckoutStatus
	Reason string
	Totals Totals
}

// Service exposes the cart operations. Every mutating operation is a full
// load-mutate-save cycle over the session's slot.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	Add(ctx context.Context, sessionID, productName string) (*View, bool, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*View, error)
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity string) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
	Checkout(ctx context.Context, sessionID string, confirm bool) (*CheckoutResult, error)
}

type service struct {
	store          Store
	products       ProductSource
	taxBasisPoints int64
}

// NewService builds a cart service backed by the provided stack.
func NewService(store Store, products ProductSource, taxBasisPoints int64) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	if taxBasisPoints < 0 || taxBasisPoints > 10000 {
		return nil, fmt.Errorf("tax basis points out of range: %d", taxBasisPoints)
	}
	return &service{
		store:          store,
		products:       products,
		taxBasisPoints: taxBasisPoints,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// Add looks the product up by exact display name. An unknown name is a silent
// no-op returning the unchanged cart. A known product either bumps the
// existing line's quantity or appends a new snapshot line with quantity 1.
func (s *service) Add(ctx context.Context, sessionID, productName string) (*View, bool, error) {
	product, ok := s.products.ByName(productName)
	if !ok {
		cart, err := s.store.Load(ctx, sessionID)
		if err != nil {
			return nil, false, err
		}
		return s.view(cart), false, nil
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if i := cart.indexOf(product.ID); i >= 0 {
		cart[i].Quantity++
	} else {
		cart = append(cart, LineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Quantity: 1,
		})
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, false, err
	}
	return s.view(cart), true, nil
}

// Remove drops the line with the given product id. An absent id is a no-op.
func (s *service) Remove(ctx context.Context, sessionID string, productID int64) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	filtered := make(Cart, 0, len(cart))
	for _, item := range cart {
		if item.ID != productID {
			filtered = append(filtered, item)
		}
	}

	if err := s.store.Save(ctx, sessionID, filtered); err != nil {
		return nil, err
	}
	return s.view(filtered), nil
}

// SetQuantity parses the requested quantity and clamps it to a floor of 1; a
// request below 1 never removes the line. Non-numeric or fractional input is
// rejected with a validation error and the line stays unchanged. An absent
// product id is a no-op.
func (s *service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity string) (*View, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(quantity), 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a whole number").
			WithDetails(map[string]string{"quantity": quantity})
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.indexOf(productID)
	if i < 0 {
		return s.view(cart), nil
	}

	cart[i].Quantity = max(1, parsed)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// Clear removes the slot entirely, leaving it absent rather than empty.
func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.view(Cart{}), nil
}

// Checkout finalizes the cart. An empty cart is rejected. Without
// confirmation the attempt is cancelled and the cart kept; with confirmation
// the slot is discarded. Deliberately no order record.
func (s *service) Checkout(ctx context.Context, sessionID string, confirm bool) (*CheckoutResult, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return &CheckoutResult{Status: CheckoutRejected, Reason: "empty cart"}, nil
	}

	totals := s.totals(cart)
	if !confirm {
		return &CheckoutResult{Status: CheckoutCancelled, Totals: totals}, nil
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return &CheckoutResult{Status: CheckoutCompleted, Totals: totals}, nil
}

func (s *service) view(cart Cart) *View {
	return &View{
		Items:     cart,
		ItemCount: cart.ItemCount(),
		Totals:    s.totals(cart),
	}
}

// totals applies the basis-point tax rate with round-half-up to the smallest
// currency unit.
func (s *service) totals(cart Cart) Totals {
	subtotal := cart.Subtotal()
	tax := (subtotal*s.taxBasisPoints + 5000) / 10000
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
