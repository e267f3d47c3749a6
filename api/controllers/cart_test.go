package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vuhoangtran/shopcart-backend/api/middleware"
	cartsvc "github.com/vuhoangtran/shopcart-backend/internal/cart"
	"github.com/vuhoangtran/shopcart-backend/internal/catalog"
	"github.com/vuhoangtran/shopcart-backend/pkg/logger"
)

const testSessionID = "11111111-2222-3333-4444-555555555555"

type stubProducts struct {
	byName map[string]catalog.Product
}

func (s stubProducts) ByName(name string) (catalog.Product, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func newTestProducts() stubProducts {
	byName := map[string]catalog.Product{}
	for _, p := range catalog.DefaultProducts() {
		byName[p.Name] = p
	}
	return stubProducts{byName: byName}
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "controllers-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
}

// newCartRouter wires the cart routes the way the production router does, with
// the session middleware replaced by a fixed id.
func newCartRouter(t *testing.T) (http.Handler, *cartsvc.MemoryStore) {
	t.Helper()

	store := cartsvc.NewMemoryStore()
	svc, err := cartsvc.NewService(store, newTestProducts(), 1000)
	if err != nil {
		t.Fatalf("building cart service: %v", err)
	}

	logg := newTestLogger()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithSessionID(req.Context(), testSessionID)))
		})
	})
	r.Get("/cart", CartGet(svc, logg))
	r.Post("/cart/items", CartAddItem(svc, logg))
	r.Delete("/cart/items/{productId}", CartRemoveItem(svc, logg))
	r.Patch("/cart/items/{productId}", CartSetQuantity(svc, logg))
	r.Delete("/cart", CartClear(svc, logg))
	r.Post("/checkout", Checkout(svc, logg))

	return r, store
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	envelope := struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestCartGetEmpty(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got cartResponse
	decodeData(t, rec, &got)
	if !got.Empty {
		t.Fatal("expected empty cart")
	}
	if got.ItemCount != 0 {
		t.Fatalf("expected item count 0, got %d", got.ItemCount)
	}
	if got.Summary.TotalDisplay != "0₫" {
		t.Fatalf("unexpected total display %q", got.Summary.TotalDisplay)
	}
}

func TestCartAddItemKnownProduct(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Áo thun nam"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got cartResponse
	decodeData(t, rec, &got)
	if got.Notification != "Áo thun nam đã được thêm vào giỏ hàng!" {
		t.Fatalf("unexpected notification %q", got.Notification)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.Quantity != 1 || item.Price != 199000 {
		t.Fatalf("unexpected line %+v", item)
	}
	if item.PriceDisplay != "199.000₫" {
		t.Fatalf("unexpected price display %q", item.PriceDisplay)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	router, store := newCartRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Nón lá"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got cartResponse
	decodeData(t, rec, &got)
	if got.Notification != "" {
		t.Fatalf("expected no notification, got %q", got.Notification)
	}
	if !got.Empty {
		t.Fatal("expected cart unchanged")
	}
	if store.HasSlot(testSessionID) {
		t.Fatal("expected no slot write for unknown product")
	}
}

func TestCartAddItemMissingName(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %q", code)
	}
}

func TestCartSetQuantityAcceptsNumberAndString(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Quần jean"}`)

	rec := doJSON(t, router, http.MethodPatch, "/cart/items/2", `{"quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for numeric quantity, got %d", rec.Code)
	}
	var got cartResponse
	decodeData(t, rec, &got)
	if got.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", got.Items[0].Quantity)
	}

	rec = doJSON(t, router, http.MethodPatch, "/cart/items/2", `{"quantity":"5"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for string quantity, got %d", rec.Code)
	}
	decodeData(t, rec, &got)
	if got.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", got.Items[0].Quantity)
	}
}

func TestCartSetQuantityClampsLowValues(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Quần jean"}`)

	rec := doJSON(t, router, http.MethodPatch, "/cart/items/2", `{"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got cartResponse
	decodeData(t, rec, &got)
	if got.Items[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", got.Items[0].Quantity)
	}
}

func TestCartSetQuantityRejectsNonNumeric(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Quần jean"}`)

	rec := doJSON(t, router, http.MethodPatch, "/cart/items/2", `{"quantity":"abc"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %q", code)
	}

	rec = doJSON(t, router, http.MethodGet, "/cart", "")
	var got cartResponse
	decodeData(t, rec, &got)
	if got.Items[0].Quantity != 1 {
		t.Fatalf("expected line untouched, got quantity %d", got.Items[0].Quantity)
	}
}

func TestCartRemoveItem(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Áo thun nam"}`)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Giày thể thao"}`)

	rec := doJSON(t, router, http.MethodDelete, "/cart/items/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got cartResponse
	decodeData(t, rec, &got)
	if len(got.Items) != 1 || got.Items[0].ID != 3 {
		t.Fatalf("unexpected cart after removal: %+v", got.Items)
	}
}

func TestCartRemoveItemBadID(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/cart/items/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %q", code)
	}
}

func TestCartClearRequiresConfirm(t *testing.T) {
	t.Parallel()

	router, store := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Áo khoác"}`)

	rec := doJSON(t, router, http.MethodDelete, "/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got clearCartResponse
	decodeData(t, rec, &got)
	if got.Cleared {
		t.Fatal("expected clear without confirm to be a no-op")
	}
	if !store.HasSlot(testSessionID) {
		t.Fatal("expected slot to survive unconfirmed clear")
	}

	rec = doJSON(t, router, http.MethodDelete, "/cart?confirm=true", "")
	decodeData(t, rec, &got)
	if !got.Cleared {
		t.Fatal("expected confirmed clear to empty the cart")
	}
	if store.HasSlot(testSessionID) {
		t.Fatal("expected slot removed after confirmed clear")
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/checkout", `{"confirm":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got checkoutResponse
	decodeData(t, rec, &got)
	if got.Status != "rejected" {
		t.Fatalf("expected rejected, got %q", got.Status)
	}
	if got.Message != "Giỏ hàng của bạn trống!" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestCheckoutDeclinedKeepsCart(t *testing.T) {
	t.Parallel()

	router, store := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Áo thun nam"}`)

	rec := doJSON(t, router, http.MethodPost, "/checkout", `{"confirm":false}`)

	var got checkoutResponse
	decodeData(t, rec, &got)
	if got.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %q", got.Status)
	}
	if !store.HasSlot(testSessionID) {
		t.Fatal("expected cart to survive a declined checkout")
	}
}

func TestCheckoutConfirmedClearsCart(t *testing.T) {
	t.Parallel()

	router, store := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Giày thể thao"}`)

	rec := doJSON(t, router, http.MethodPost, "/checkout", `{"confirm":true}`)

	var got checkoutResponse
	decodeData(t, rec, &got)
	if got.Status != "completed" {
		t.Fatalf("expected completed, got %q", got.Status)
	}
	if got.Redirect != "/" {
		t.Fatalf("expected redirect to /, got %q", got.Redirect)
	}
	if got.Summary.Total != 548900 {
		t.Fatalf("unexpected total %d", got.Summary.Total)
	}
	if store.HasSlot(testSessionID) {
		t.Fatal("expected slot discarded after confirmed checkout")
	}
}

func TestCartTotalsDisplay(t *testing.T) {
	t.Parallel()

	router, _ := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Áo thun nam"}`)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Áo thun nam"}`)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_name":"Quần jean"}`)

	rec := doJSON(t, router, http.MethodGet, "/cart", "")

	var got cartResponse
	decodeData(t, rec, &got)
	if got.Summary.Subtotal != 697000 {
		t.Fatalf("unexpected subtotal %d", got.Summary.Subtotal)
	}
	if got.Summary.Tax != 69700 {
		t.Fatalf("unexpected tax %d", got.Summary.Tax)
	}
	if got.Summary.TotalDisplay != "766.700₫" {
		t.Fatalf("unexpected total display %q", got.Summary.TotalDisplay)
	}
	if got.Items[0].LineTotalDisplay != "398.000₫" {
		t.Fatalf("unexpected line total display %q", got.Items[0].LineTotalDisplay)
	}
}
