package web

import "net/http"

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.page(r, "home", nil), "pages/home.html")
}

func (s *Server) handleLearnMore(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.page(r, "learn-more", nil), "pages/learn_more.html")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.page(r, "dashboard", nil), "pages/dashboard.html")
}
