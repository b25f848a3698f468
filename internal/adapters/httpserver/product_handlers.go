package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/usecase"
)

type productPage struct {
	Products []domain.Product `json:"products"`
	Meta     pageMeta         `json:"meta"`
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listProducts(w, r)
	case http.MethodPost:
		s.createProduct(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePage(r)
	q := r.URL.Query()
	f := domain.ProductFilter{
		Status:      domain.ProductStatus(q.Get("status")),
		TopCategory: domain.TopCategory(q.Get("top_category")),
		Page:        page,
		PageSize:    limit,
	}
	switch q.Get("stock") {
	case "in":
		f.Stock = domain.StockIn
	case "out":
		f.Stock = domain.StockOut
	}
	if q.Get("discounted") == "true" {
		f.Discounted = true
	}

	products, total, err := s.products.List(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productPage{Products: products, Meta: paginate(page, limit, total)})
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.require(w, r, domain.ActionManageCatalog); !ok {
		return
	}
	data, contentType, err := readImage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid multipart form"})
		return
	}

	form := r.MultipartForm.Value
	field := func(name string) string {
		if v, ok := form[name]; ok && len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	originalPrice, _ := strconv.ParseFloat(field("original_price"), 64)
	discount, _ := strconv.Atoi(field("discount"))
	inStock, _ := strconv.Atoi(field("in_stock"))

	in := usecase.NewProduct{
		Name:          field("name"),
		Description:   field("description"),
		OriginalPrice: originalPrice,
		Discount:      discount,
		InStock:       inStock,
		Colors:        splitList(field("colors")),
		Brand:         field("brand"),
		Category:      domain.Category(field("category")),
		ProductType:   field("product_type"),
		Gender:        domain.Gender(field("gender")),
		ImageData:     data,
		ImageType:     contentType,
	}
	for _, raw := range splitList(field("sizes")) {
		in.Sizes = append(in.Sizes, domain.Size(raw))
	}

	p, err := s.products.Create(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r, "/api/products/")
	if len(parts) == 0 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.getProduct(w, r, parts[0])
		case http.MethodDelete:
			s.deleteProduct(w, r, parts[0])
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) != 2 || r.Method != http.MethodPatch {
		methodNotAllowed(w)
		return
	}
	id, ok := parseID(w, parts[0])
	if !ok {
		return
	}
	switch parts[1] {
	case "image":
		s.patchProductImage(w, r, id)
	case "status":
		s.patchProductStatus(w, r, id)
	case "discount":
		s.patchProductDiscount(w, r, id)
	case "stock":
		s.patchProductStock(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	}
}

// getProduct resolves by id when the segment is a UUID, otherwise by slug.
// ?by=name looks up the exact product name instead.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request, raw string) {
	key, value := "slug", raw
	if r.URL.Query().Get("by") == "name" {
		key = "name"
	} else if _, err := uuid.Parse(raw); err == nil {
		key = "id"
	}
	p, err := s.products.GetBy(r.Context(), key, value)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request, raw string) {
	if _, ok := s.require(w, r, domain.ActionManageCatalog); !ok {
		return
	}
	id, ok := parseID(w, raw)
	if !ok {
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (s *Server) patchProductImage(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.require(w, r, domain.ActionManageCatalog); !ok {
		return
	}
	data, contentType, err := readImage(r)
	if err != nil || data == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "image file is required"})
		return
	}
	p, err := s.products.UpdateImage(r.Context(), id, data, contentType)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) patchProductStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.require(w, r, domain.ActionManageCatalog); !ok {
		return
	}
	var body struct {
		Status domain.ProductStatus `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.products.UpdateStatus(r.Context(), id, body.Status); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

func (s *Server) patchProductDiscount(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.require(w, r, domain.ActionManageCatalog); !ok {
		return
	}
	var body struct {
		Discount int `json:"discount"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	p, err := s.products.UpdateDiscount(r.Context(), id, body.Discount)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) patchProductStock(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.require(w, r, domain.ActionManageCatalog); !ok {
		return
	}
	var body struct {
		InStock int `json:"in_stock"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.products.UpdateStock(r.Context(), id, body.InStock); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "stock updated"})
}
