package controllers

import (
	"net/http"

	"github.com/vuhoangtran/shopcart-backend/api/responses"
	"github.com/vuhoangtran/shopcart-backend/internal/catalog"
	pkgerrors "github.com/vuhoangtran/shopcart-backend/pkg/errors"
	"github.com/vuhoangtran/shopcart-backend/pkg/logger"
	"github.com/vuhoangtran/shopcart-backend/pkg/money"
)

// CatalogProducts lists the storefront assortment.
func CatalogProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products := svc.List()
		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			out = append(out, newProductResponse(p))
		}
		responses.WriteSuccess(w, catalogResponse{Products: out})
	}
}

type catalogResponse struct {
	Products []productResponse `json:"products"`
}

type productResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Image        string `json:"image"`
}

func newProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: money.FormatVND(p.Price),
		Image:        p.Image,
	}
}
