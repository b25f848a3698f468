package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

func (s *Server) apiUserByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r, "/api/users/")
	if len(parts) == 0 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	id, ok := parseID(w, parts[0])
	if !ok {
		return
	}
	p, ok := s.require(w, r, domain.ActionBrowse)
	if !ok {
		return
	}
	// Profiles are private: the owner or staff only.
	if p.Role == domain.RoleUser && p.ID != id || p.Role == domain.RoleGuest {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "insufficient permissions"})
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		u, err := s.users.GetByID(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
		return
	}
	if len(parts) != 2 || r.Method != http.MethodPatch {
		methodNotAllowed(w)
		return
	}
	switch parts[1] {
	case "name":
		s.patchUserName(w, r, id)
	case "image":
		s.patchUserImage(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	}
}

func (s *Server) patchUserName(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	u, err := s.users.Rename(r.Context(), id, body.Name)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) patchUserImage(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	data, contentType, err := readImage(r)
	if err != nil || data == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "image file is required"})
		return
	}
	u, err := s.users.UpdateImage(r.Context(), id, data, contentType)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
