package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/pantraqa/internal/domain"
	"github.com/vbonduro/pantraqa/internal/service"
)

type movementForm struct {
	Action     domain.StockAction
	Path       string
	DrinkID    int64
	LocationID int64
	Quantity   string
	Options    service.MovementOptions
	Error      string
	Errors     map[string]string
	Nonce      string
}

func movementPath(action domain.StockAction) string {
	return "/stocks-" + string(action)
}

func (s *Server) handleMovementForm(action domain.StockAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderMovementForm(w, r, http.StatusOK, movementForm{Action: action})
	}
}

func (s *Server) renderMovementForm(w http.ResponseWriter, r *http.Request, status int, f movementForm) {
	f.Path = movementPath(f.Action)
	f.Options = s.catalog.MovementOptions(r.Context())
	f.Nonce = newNonce()
	s.renderPage(w, status, s.page(r, "stocks-"+string(f.Action), map[string]any{"Form": f}),
		"pages/stock_form.html")
}

func (s *Server) handleRecordMovement(action domain.StockAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := service.MovementInput{
			DrinkID:    formInt64(r, "drinkId"),
			LocationID: formInt64(r, "storageLocationId"),
			Quantity:   int(formInt64(r, "quantity")),
		}

		if err := s.stocks.Record(r.Context(), action, in); err != nil {
			s.logger.Info("stock movement failed", "action", action, "error", err)
			f := movementForm{
				Action:     action,
				DrinkID:    in.DrinkID,
				LocationID: in.LocationID,
				Quantity:   strings.TrimSpace(r.PostFormValue("quantity")),
			}
			f.Error, f.Errors = formError(err, "Stock update failed")
			s.renderMovementForm(w, r, http.StatusUnprocessableEntity, f)
			return
		}

		s.setFlash(r, "Stock updated successfully!", "success")
		redirect(w, r, movementPath(action))
	}
}

// formInt64 reads an integer form value. Missing or malformed values read as
// zero, which input validation then rejects.
func formInt64(r *http.Request, name string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue(name)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
