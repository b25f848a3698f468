package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/usecase"
)

type checkoutRequest struct {
	UserID          uuid.UUID              `json:"user_id"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	Items           []struct {
		ProductID uuid.UUID   `json:"product_id"`
		Quantity  int         `json:"quantity"`
		Color     string      `json:"color"`
		Size      domain.Size `json:"size"`
	} `json:"items"`
}

type checkoutResponse struct {
	Order        *domain.Order `json:"order"`
	ClientSecret string        `json:"client_secret"`
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	p, ok := s.require(w, r, domain.ActionPlaceOrder)
	if !ok {
		return
	}
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		req.UserID = p.ID
	}
	// Plain users may only check out their own cart.
	if p.Role == domain.RoleUser && req.UserID != p.ID {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "cannot place orders for another user"})
		return
	}

	items := make([]usecase.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		})
	}

	order, err := s.orders.Place(r.Context(), req.UserID, req.ShippingAddress, items)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkoutResponse{Order: order, ClientSecret: order.ClientSecret})
}

type orderPage struct {
	Orders []domain.Order `json:"orders"`
	Meta   pageMeta       `json:"meta"`
}

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, ok := s.require(w, r, domain.ActionPlaceOrder)
	if !ok {
		return
	}
	page, limit := parsePage(r)
	q := r.URL.Query()
	f := domain.OrderFilter{
		Status:   domain.OrderStatus(q.Get("status")),
		Page:     page,
		PageSize: limit,
	}
	if raw := q.Get("user_id"); raw != "" {
		id, ok := parseID(w, raw)
		if !ok {
			return
		}
		f.UserID = id
	}
	if raw := q.Get("product_id"); raw != "" {
		id, ok := parseID(w, raw)
		if !ok {
			return
		}
		f.ProductID = id
	}
	// Plain users see their own orders only.
	if p.Role == domain.RoleUser {
		f.UserID = p.ID
	}

	orders, total, err := s.orders.List(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderPage{Orders: orders, Meta: paginate(page, limit, total)})
}

func (s *Server) apiOrderByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r, "/api/orders/")
	if len(parts) == 0 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	id, ok := parseID(w, parts[0])
	if !ok {
		return
	}

	if len(parts) == 2 && parts[1] == "status" {
		if r.Method != http.MethodPatch {
			methodNotAllowed(w)
			return
		}
		s.patchOrderStatus(w, r, id)
		return
	}
	if len(parts) != 1 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getOrder(w, r, id)
	case http.MethodDelete:
		s.deleteOrder(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	p, ok := s.require(w, r, domain.ActionPlaceOrder)
	if !ok {
		return
	}
	order, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	if p.Role == domain.RoleUser && order.UserID != p.ID {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "not your order"})
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) patchOrderStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.require(w, r, domain.ActionManageOrders); !ok {
		return
	}
	var body struct {
		Status domain.OrderStatus `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	order, err := s.orders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.require(w, r, domain.ActionManageOrders); !ok {
		return
	}
	if err := s.orders.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

type linePage struct {
	Products []domain.OrderLine `json:"products"`
	Meta     pageMeta           `json:"meta"`
}

func (s *Server) apiOrderedProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if _, ok := s.require(w, r, domain.ActionManageOrders); !ok {
		return
	}
	page, limit := parsePage(r)
	lines, total, err := s.orders.Lines(r.Context(), domain.LineFilter{Page: page, PageSize: limit})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, linePage{Products: lines, Meta: paginate(page, limit, total)})
}

// apiOrderedProductsBy serves /api/ordered-products/{order|user|product}/{id}:
// the flattened purchase lines scoped to one order, buyer, or catalog product.
func (s *Server) apiOrderedProductsBy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	parts := pathParts(r, "/api/ordered-products/")
	if len(parts) != 2 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	id, ok := parseID(w, parts[1])
	if !ok {
		return
	}

	page, limit := parsePage(r)
	f := domain.LineFilter{Page: page, PageSize: limit}
	switch parts[0] {
	case "order":
		f.OrderID = id
	case "user":
		f.UserID = id
	case "product":
		f.ProductID = id
	default:
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	p, ok := s.require(w, r, domain.ActionPlaceOrder)
	if !ok {
		return
	}
	// User-scoped listings are open to the owner; everything else is staff.
	if p.Role == domain.RoleUser && (parts[0] != "user" || id != p.ID) {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "insufficient permissions"})
		return
	}

	lines, total, err := s.orders.Lines(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, linePage{Products: lines, Meta: paginate(page, limit, total)})
}
