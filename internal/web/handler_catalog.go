package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
	"github.com/vbonduro/pantraqa/internal/service"
)

func (s *Server) handleListDrinks(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	drinks, err := s.catalog.ListDrinks(r.Context())
	if err != nil {
		s.logger.Error("failed to list drinks", "error", err)
		data["Error"] = api.Message(err, "Error fetching drinks!")
	}
	data["Drinks"] = drinks
	s.renderPage(w, http.StatusOK, s.page(r, "drinks", data), "pages/drinks.html")
}

// handleDeleteDrink removes the drink. htmx drops the card on success; on
// failure only a toast is shown.
func (s *Server) handleDeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid drink id", http.StatusBadRequest)
		return
	}

	if err := s.catalog.DeleteDrink(r.Context(), id); err != nil {
		s.logger.Error("failed to delete drink", "drink_id", id, "error", err)
		s.writeToast(w, api.Message(err, "Error deleting drink!"), "error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.toastHTML("Drink deleted successfully!", "success")))
}

type drinkForm struct {
	Input  service.DrinkInput
	Error  string
	Errors map[string]string
	Nonce  string
}

func (s *Server) handleDrinkForm(w http.ResponseWriter, r *http.Request) {
	s.renderDrinkForm(w, r, http.StatusOK, drinkForm{})
}

func (s *Server) renderDrinkForm(w http.ResponseWriter, r *http.Request, status int, f drinkForm) {
	f.Nonce = newNonce()
	s.renderPage(w, status, s.page(r, "add-drink", map[string]any{"Form": f}), "pages/drink_form.html")
}

func (s *Server) handleCreateDrink(w http.ResponseWriter, r *http.Request) {
	in := service.DrinkInput{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Size:     strings.TrimSpace(r.PostFormValue("size")),
		Category: strings.TrimSpace(r.PostFormValue("category")),
	}
	if err := s.catalog.CreateDrink(r.Context(), in); err != nil {
		s.logger.Info("create drink failed", "error", err)
		f := drinkForm{Input: in}
		f.Error, f.Errors = formError(err, "Error creating drink!")
		s.renderDrinkForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}
	s.setFlash(r, "Drink created successfully!", "success")
	redirect(w, r, "/drinks")
}

type locationForm struct {
	Input  service.LocationInput
	Error  string
	Errors map[string]string
	Nonce  string
}

func (s *Server) handleLocationForm(w http.ResponseWriter, r *http.Request) {
	s.renderLocationForm(w, r, http.StatusOK, locationForm{Input: service.LocationInput{Type: domain.LocationPantry}})
}

func (s *Server) renderLocationForm(w http.ResponseWriter, r *http.Request, status int, f locationForm) {
	f.Nonce = newNonce()
	s.renderPage(w, status, s.page(r, "add-storage-location", map[string]any{"Form": f}),
		"pages/location_form.html")
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	in := service.LocationInput{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Type:        domain.LocationType(r.PostFormValue("type")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	if err := s.catalog.CreateLocation(r.Context(), in); err != nil {
		s.logger.Info("create storage location failed", "error", err)
		f := locationForm{Input: in}
		f.Error, f.Errors = formError(err, "Error creating storage location!")
		s.renderLocationForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}
	s.setFlash(r, "Storage location created successfully!", "success")
	redirect(w, r, "/dashboard")
}
