package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	users, err := s.accounts.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		data["Error"] = api.Message(err, "Failed to fetch users")
	}
	data["Users"] = users
	s.renderPage(w, http.StatusOK, s.page(r, "all-users", data), "pages/users.html", "partials/user_row.html")
}

// handleChangeRole updates one user's role and answers with that user's row.
// The row posts its own email and name so it can be redrawn without
// re-fetching the list.
func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	role, err := s.accounts.ChangeRole(r.Context(), id, r.PostForm.Get("role"))
	if err != nil {
		s.logger.Error("failed to change user role", "user_id", id, "error", err)
		msg, fields := formError(err, "Failed to update user role")
		if m, ok := fields["role"]; ok {
			msg = m
		}
		s.writeToast(w, msg, "error")
		return
	}

	row := map[string]any{
		"Row": domain.User{
			ID:    id,
			Email: strings.TrimSpace(r.PostForm.Get("email")),
			Name:  strings.TrimSpace(r.PostForm.Get("name")),
			Role:  role,
		},
		"Toast": s.toastHTML("User role updated successfully!", "success"),
	}
	s.renderPartial(w, http.StatusOK, "user_row_update", row, "partials/user_row.html")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := s.accounts.DeleteUser(r.Context(), id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		s.writeToast(w, api.Message(err, "Failed to delete user"), "error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.toastHTML("User deleted successfully!", "success")))
}
