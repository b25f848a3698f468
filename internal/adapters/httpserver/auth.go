package httpserver

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// principal resolves the caller from the Authorization header. A missing or
// invalid token yields a guest principal rather than an error; route guards
// decide whether a guest may proceed.
func (s *Server) principal(r *http.Request) domain.Principal {
	guest := domain.Principal{Role: domain.RoleGuest}
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return guest
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return guest
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return guest
	}
	role := domain.Role(c.Role)
	switch role {
	case domain.RoleUser, domain.RoleAdmin, domain.RoleEditor:
	default:
		role = domain.RoleGuest
	}
	return domain.Principal{ID: id, Role: role}
}

// require writes a 401/403 and returns false when the caller may not perform
// the action.
func (s *Server) require(w http.ResponseWriter, r *http.Request, action domain.Action) (domain.Principal, bool) {
	p := s.principal(r)
	if domain.Allow(p, action) {
		return p, true
	}
	if p.Role == domain.RoleGuest {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
	} else {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "insufficient permissions"})
	}
	return p, false
}
