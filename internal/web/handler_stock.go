package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/pantraqa/internal/domain"
	"github.com/vbonduro/pantraqa/internal/service"
)

// stockViewState is the page, status filter and sort order of the stock list.
// It travels in the query string so that reloads and pagination keep it.
type stockViewState struct {
	Page   int
	Status service.StatusFilter
	Sort   service.SortKey
}

func parseStockViewState(v url.Values) stockViewState {
	page, err := strconv.Atoi(v.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return stockViewState{
		Page:   page,
		Status: service.ParseStatusFilter(v.Get("status")),
		Sort:   service.ParseSortKey(v.Get("sort")),
	}
}

// Query encodes the state, with page replaced by p.
func (st stockViewState) Query(p int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p))
	v.Set("status", string(st.Status))
	v.Set("sort", string(st.Sort))
	return v.Encode()
}

// stockTable fetches the requested page and arranges it for display.
func (s *Server) stockTable(r *http.Request, st stockViewState) map[string]any {
	data := map[string]any{
		"User":  currentUser(r),
		"State": st,
	}
	res, err := s.stocks.ListPage(r.Context(), st.Page)
	if err != nil {
		s.logger.Error("failed to list stock", "page", st.Page, "error", err)
		data["Error"] = "Failed to fetch stock data"
		return data
	}
	st.Page = res.Page
	data["State"] = st
	data["Items"] = service.Arrange(res.Items, st.Status, st.Sort)
	data["TotalPages"] = res.TotalPages
	data["TotalItems"] = res.TotalItems
	data["Prev"] = service.StepPage(res.Page, -1, res.TotalPages)
	data["Next"] = service.StepPage(res.Page, 1, res.TotalPages)
	return data
}

func (s *Server) handleListStocks(w http.ResponseWriter, r *http.Request) {
	st := parseStockViewState(r.URL.Query())
	data := s.stockTable(r, st)

	if isHTMX(r) {
		s.renderPartial(w, http.StatusOK, "stock_table", data, "partials/stock_table.html")
		return
	}
	s.renderPage(w, http.StatusOK, s.page(r, "stocks", data),
		"pages/stocks.html", "partials/stock_table.html")
}

// EditQuery encodes the threshold modal's query for item. The view state
// rides along so the table can be re-fetched on the same page afterwards.
func (st stockViewState) EditQuery(item domain.StockItem) string {
	v := url.Values{}
	v.Set("current", strconv.Itoa(item.Threshold))
	v.Set("drink", item.Drink.Name+" ("+item.Drink.Size+")")
	v.Set("page", strconv.Itoa(st.Page))
	v.Set("status", string(st.Status))
	v.Set("sort", string(st.Sort))
	return v.Encode()
}

type thresholdForm struct {
	ID      int64
	Drink   string
	Current int
	Value   string
	State   stockViewState
	Error   string
	Errors  map[string]string
}

func (s *Server) handleThresholdForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid stock id", http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	current, _ := strconv.Atoi(q.Get("current"))
	f := thresholdForm{
		ID:      id,
		Drink:   q.Get("drink"),
		Current: current,
		Value:   strconv.Itoa(current),
		State:   parseStockViewState(q),
	}
	s.renderPartial(w, http.StatusOK, "threshold_modal", f, "partials/threshold_modal.html")
}

// handleUpdateThreshold saves the new threshold and answers with the
// re-fetched table for the page the user was on.
func (s *Server) handleUpdateThreshold(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid stock id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	st := parseStockViewState(r.PostForm)
	value := strings.TrimSpace(r.PostForm.Get("threshold"))
	threshold, convErr := strconv.Atoi(value)
	if convErr != nil {
		err = service.FieldError("threshold", "Enter a whole number")
	} else {
		err = s.stocks.UpdateThreshold(r.Context(), id, service.ThresholdInput{Threshold: threshold})
	}
	if err != nil {
		s.logger.Info("threshold update failed", "stock_id", id, "error", err)
		current, _ := strconv.Atoi(r.PostForm.Get("current"))
		f := thresholdForm{ID: id, Drink: r.PostForm.Get("drink"), Current: current, Value: value, State: st}
		f.Error, f.Errors = formError(err, "Failed to update threshold")
		w.Header().Set("HX-Retarget", "#modal")
		w.Header().Set("HX-Reswap", "innerHTML")
		s.renderPartial(w, http.StatusUnprocessableEntity, "threshold_modal", f, "partials/threshold_modal.html")
		return
	}

	data := s.stockTable(r, st)
	data["CloseModal"] = true
	data["Toast"] = s.toastHTML("Threshold updated successfully!", "success")
	s.renderPartial(w, http.StatusOK, "stock_table", data, "partials/stock_table.html")
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
