package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vuhoangtran/shopcart-backend/api/middleware"
	"github.com/vuhoangtran/shopcart-backend/api/responses"
	"github.com/vuhoangtran/shopcart-backend/api/validators"
	cartsvc "github.com/vuhoangtran/shopcart-backend/internal/cart"
	pkgerrors "github.com/vuhoangtran/shopcart-backend/pkg/errors"
	"github.com/vuhoangtran/shopcart-backend/pkg/logger"
	"github.com/vuhoangtran/shopcart-backend/pkg/money"
)

// CartGet returns the session's cart with derived totals.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		view, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(view, ""))
	}
}

// CartAddItem adds one unit of a product, looked up by exact display name.
// Unknown names are a soft no-op: the response carries the unchanged cart and
// no notification.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, added, err := svc.Add(r.Context(), sessionID, payload.ProductName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notification := ""
		if added {
			notification = fmt.Sprintf("%s đã được thêm vào giỏ hàng!", payload.ProductName)
		}
		responses.WriteSuccess(w, newCartResponse(view, notification))
	}
}

// CartRemoveItem drops a line by product id. Absent ids are a soft no-op.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Remove(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(view, ""))
	}
}

// CartSetQuantity sets a line's quantity, clamped to a floor of 1. The
// quantity is accepted as a JSON number or a numeric string, matching what
// number inputs submit.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetQuantity(r.Context(), sessionID, productID, string(payload.Quantity))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(view, ""))
	}
}

// CartClear empties the cart. The client's confirmation prompt is surfaced as
// an explicit confirm flag; without it nothing changes.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		if r.URL.Query().Get("confirm") != "true" {
			view, err := svc.Get(r.Context(), sessionID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, clearCartResponse{Cleared: false, Cart: newCartResponse(view, "")})
			return
		}

		view, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, clearCartResponse{Cleared: true, Cart: newCartResponse(view, "")})
	}
}

type addItemRequest struct {
	ProductName string `json:"product_name" validate:"required"`
}

// numericString accepts both 3 and "3" so number inputs can post their raw
// value either way.
type numericString string

func (n *numericString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	*n = numericString(s)
	return nil
}

type setQuantityRequest struct {
	Quantity numericString `json:"quantity" validate:"required"`
}

type clearCartResponse struct {
	Cleared bool         `json:"cleared"`
	Cart    cartResponse `json:"cart"`
}

type cartResponse struct {
	Items        []cartItemResponse  `json:"items"`
	ItemCount    int64               `json:"item_count"`
	Empty        bool                `json:"empty"`
	Summary      cartSummaryResponse `json:"summary"`
	Notification string              `json:"notification,omitempty"`
}

type cartItemResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Price            int64  `json:"price"`
	PriceDisplay     string `json:"price_display"`
	Image            string `json:"image"`
	Quantity         int64  `json:"quantity"`
	LineTotal        int64  `json:"line_total"`
	LineTotalDisplay string `json:"line_total_display"`
}

type cartSummaryResponse struct {
	Subtotal        int64  `json:"subtotal"`
	SubtotalDisplay string `json:"subtotal_display"`
	Tax             int64  `json:"tax"`
	TaxDisplay      string `json:"tax_display"`
	Total           int64  `json:"total"`
	TotalDisplay    string `json:"total_display"`
}

func newCartResponse(view *cartsvc.View, notification string) cartResponse {
	items := make([]cartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		lineTotal := item.Price * item.Quantity
		items = append(items, cartItemResponse{
			ID:               item.ID,
			Name:             item.Name,
			Price:            item.Price,
			PriceDisplay:     money.FormatVND(item.Price),
			Image:            item.Image,
			Quantity:         item.Quantity,
			LineTotal:        lineTotal,
			LineTotalDisplay: money.FormatVND(lineTotal),
		})
	}

	return cartResponse{
		Items:        items,
		ItemCount:    view.ItemCount,
		Empty:        view.Items.IsEmpty(),
		Summary:      newCartSummaryResponse(view.Totals),
		Notification: notification,
	}
}

func newCartSummaryResponse(totals cartsvc.Totals) cartSummaryResponse {
	return cartSummaryResponse{
		Subtotal:        totals.Subtotal,
		SubtotalDisplay: money.FormatVND(totals.Subtotal),
		Tax:             totals.Tax,
		TaxDisplay:      money.FormatVND(totals.Tax),
		Total:           totals.Total,
		TotalDisplay:    money.FormatVND(totals.Total),
	}
}

func requireCartSession(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
		return "", false
	}
	return sessionID, true
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productId")
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}
