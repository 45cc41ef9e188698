package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
	"github.com/vbonduro/pantraqa/internal/service"
)

type loginForm struct {
	Email  string
	Error  string
	Errors map[string]string
	Nonce  string
}

type registerForm struct {
	Email  string
	Name   string
	Role   domain.Role
	Error  string
	Errors map[string]string
	Nonce  string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderLoginForm(w, r, http.StatusOK, loginForm{})
}

func (s *Server) renderLoginForm(w http.ResponseWriter, r *http.Request, status int, f loginForm) {
	f.Nonce = newNonce()
	s.renderPage(w, status, s.page(r, "login", map[string]any{"Form": f}), "pages/login.html")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	in := service.LoginInput{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	sess, err := s.accounts.Login(r.Context(), in)
	if err != nil {
		s.logger.Info("login failed", "error", err)
		f := loginForm{Email: in.Email}
		f.Error, f.Errors = formError(err, "Login failed")
		s.renderLoginForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	if err := s.auth.Login(r.Context(), sess.User, sess.Token); err != nil {
		s.logger.Error("failed to store session", "error", err)
		s.renderLoginForm(w, r, http.StatusInternalServerError, loginForm{Email: in.Email, Error: "Login failed"})
		return
	}
	s.setFlash(r, "Login successful!", "success")
	redirect(w, r, "/dashboard")
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.renderRegisterForm(w, r, http.StatusOK, registerForm{Role: domain.RoleStaff})
}

func (s *Server) renderRegisterForm(w http.ResponseWriter, r *http.Request, status int, f registerForm) {
	f.Nonce = newNonce()
	s.renderPage(w, status, s.page(r, "register", map[string]any{"Form": f}), "pages/register.html")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Password: r.PostFormValue("password"),
		Role:     domain.Role(r.PostFormValue("role")),
	}

	sess, err := s.accounts.Register(r.Context(), in)
	if err != nil {
		s.logger.Info("registration failed", "error", err)
		f := registerForm{Email: in.Email, Name: in.Name, Role: in.Role}
		f.Error, f.Errors = formError(err, "Registration failed")
		s.renderRegisterForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	if err := s.auth.Login(r.Context(), sess.User, sess.Token); err != nil {
		s.logger.Error("failed to store session", "error", err)
		f := registerForm{Email: in.Email, Name: in.Name, Role: in.Role, Error: "Registration failed"}
		s.renderRegisterForm(w, r, http.StatusInternalServerError, f)
		return
	}
	s.setFlash(r, "Registration successful!", "success")
	redirect(w, r, "/stocks")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.logger.Error("failed to destroy session", "error", err)
	}
	s.setFlash(r, "Logged out successfully", "success")
	redirect(w, r, "/login")
}

// formError splits err into a message for the top of a form and per-field
// messages. Validation failures only produce field messages. Anything else
// yields the API's message, or fallback when it has none.
func formError(err error, fallback string) (string, map[string]string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return "", verr.Fields
	}
	return api.Message(err, fallback), nil
}
