package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/usecase"
)

const defaultPageSize = 8

type Server struct {
	mux      *http.ServeMux
	products *usecase.ProductUC
	orders   *usecase.OrderUC
	reviews  *usecase.ReviewUC
	users    *usecase.UserUC

	uploadsDir string
	jwtSecret  []byte
}

func New(p *usecase.ProductUC, o *usecase.OrderUC, rv *usecase.ReviewUC, u *usecase.UserUC) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		products:   p,
		orders:     o,
		reviews:    rv,
		users:      u,
		uploadsDir: "uploads",
	}
	if dir := os.Getenv("STORAGE_DIR"); dir != "" {
		s.uploadsDir = dir
	}
	sec := os.Getenv("JWT_SECRET")
	if sec == "" {
		sec = "dev-insecure"
	}
	s.jwtSecret = []byte(sec)

	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))

	s.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)

	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
	s.mux.HandleFunc("/api/orders", s.apiOrders)
	s.mux.HandleFunc("/api/orders/", s.apiOrderByID)

	s.mux.HandleFunc("/api/ordered-products", s.apiOrderedProducts)
	s.mux.HandleFunc("/api/ordered-products/", s.apiOrderedProductsBy)

	s.mux.HandleFunc("/api/reviews", s.apiReviews)
	s.mux.HandleFunc("/api/reviews/", s.apiReviewByID)

	s.mux.HandleFunc("/api/users/", s.apiUserByID)

	s.mux.HandleFunc("/admin/export/products", s.handleExportProducts)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrGateway):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// pathParts splits the trailing path after prefix into non-empty segments.
func pathParts(r *http.Request, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

type pageMeta struct {
	CurrentPage int  `json:"current_page"`
	PrevPage    *int `json:"prev_page"`
	NextPage    *int `json:"next_page"`
	TotalPages  int  `json:"total_pages"`
}

func parsePage(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func paginate(page, limit int, total int64) pageMeta {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	m := pageMeta{CurrentPage: page, TotalPages: totalPages}
	if page > 1 {
		prev := page - 1
		m.PrevPage = &prev
	}
	if page < totalPages {
		next := page + 1
		m.NextPage = &next
	}
	return m
}

const maxUploadSize = 10 << 20

// readImage pulls the optional "image" file out of a multipart form. A request
// without the part returns (nil, "", nil).
func readImage(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", err
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return nil, "", err
	}
	return data, contentTypeOf(header), nil
}

func contentTypeOf(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
