package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/usecase"
)

type reviewPage struct {
	Reviews []domain.Review `json:"reviews"`
	Meta    pageMeta        `json:"meta"`
}

func (s *Server) apiReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReviews(w, r)
	case http.MethodPost:
		s.createReview(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePage(r)
	f := domain.ReviewFilter{Page: page, PageSize: limit}
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		id, ok := parseID(w, raw)
		if !ok {
			return
		}
		f.ProductID = id
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, ok := parseID(w, raw)
		if !ok {
			return
		}
		f.UserID = id
	}

	reviews, total, err := s.reviews.List(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewPage{Reviews: reviews, Meta: paginate(page, limit, total)})
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	p, ok := s.require(w, r, domain.ActionWriteReview)
	if !ok {
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
	parse := func(name string) uuid.UUID {
		id, _ := uuid.Parse(field(name))
		return id
	}
	rating, _ := strconv.ParseFloat(field("rating"), 64)

	in := usecase.NewReview{
		UserID:     parse("user_id"),
		OrderID:    parse("order_id"),
		ProductID:  parse("product_id"),
		ProductUID: parse("product_uid"),
		Review:     field("review"),
		Rating:     rating,
		ImageData:  data,
		ImageType:  contentType,
	}
	if in.UserID == uuid.Nil {
		in.UserID = p.ID
	}
	if p.Role == domain.RoleUser && in.UserID != p.ID {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "cannot review for another user"})
		return
	}

	review, err := s.reviews.Create(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) apiReviewByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r, "/api/reviews/")
	if len(parts) != 1 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	id, ok := parseID(w, parts[0])
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		review, err := s.reviews.GetByID(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, review)
	case http.MethodPut:
		s.updateReview(w, r, id)
	case http.MethodDelete:
		s.deleteReview(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	p, ok := s.require(w, r, domain.ActionWriteReview)
	if !ok {
		return
	}
	if err := s.ownsReview(r, p, id); err != nil {
		writeErr(w, err)
		return
	}
	var body struct {
		Review string  `json:"review"`
		Rating float64 `json:"rating"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	review, err := s.reviews.Update(r.Context(), id, body.Review, body.Rating)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	p, ok := s.require(w, r, domain.ActionWriteReview)
	if !ok {
		return
	}
	if err := s.ownsReview(r, p, id); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.reviews.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

// ownsReview lets staff touch any review and users only their own.
func (s *Server) ownsReview(r *http.Request, p domain.Principal, id uuid.UUID) error {
	if p.Role != domain.RoleUser {
		return nil
	}
	review, err := s.reviews.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	if review.UserID != p.ID {
		return domain.ErrNotFound
	}
	return nil
}
