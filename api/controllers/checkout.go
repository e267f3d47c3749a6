package controllers

import (
	"net/http"

	"github.com/vuhoangtran/shopcart-backend/api/responses"
	"github.com/vuhoangtran/shopcart-backend/api/validators"
	cartsvc "github.com/vuhoangtran/shopcart-backend/internal/cart"
	"github.com/vuhoangtran/shopcart-backend/pkg/logger"
)

// Checkout finalizes the session's cart. The client sends its confirmation
// answer as an explicit flag; a declined or empty checkout changes nothing.
func Checkout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), sessionID, payload.Confirm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCheckoutResponse(result))
	}
}

type checkoutRequest struct {
	Confirm bool `json:"confirm"`
}

type checkoutResponse struct {
	Status   string              `json:"status"`
	Reason   string              `json:"reason,omitempty"`
	Summary  cartSummaryResponse `json:"summary"`
	Redirect string              `json:"redirect,omitempty"`
	Message  string              `json:"message,omitempty"`
}

func newCheckoutResponse(result *cartsvc.CheckoutResult) checkoutResponse {
	out := checkoutResponse{
		Status:  string(result.Status),
		Reason:  result.Reason,
		Summary: newCartSummaryResponse(result.Totals),
	}

	switch result.Status {
	case cartsvc.CheckoutRejected:
		out.Message = "Giỏ hàng của bạn trống!"
	case cartsvc.CheckoutCompleted:
		out.Message = "Cám ơn bạn đã mua hàng! Đơn hàng đã được xác nhận."
		out.Redirect = "/"
	}

	return out
}
