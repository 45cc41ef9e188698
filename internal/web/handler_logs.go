package web

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/pantraqa/internal/service"
)

// appliedParam carries the encoded query the results panel currently shows.
// The server renders it into the filter form after every results response.
const appliedParam = "applied"

// logResults is the data of the results panel: the entries, the chart of
// those entries and the pagination links.
type logResults struct {
	Query      service.LogQuery
	Result     *service.LogResult
	Error      string
	PrevQuery  string
	NextQuery  string
	ExportArgs string
}

func (s *Server) fetchLogResults(r *http.Request, q service.LogQuery) logResults {
	out := logResults{Query: q, ExportArgs: q.ExportValues().Encode()}
	res, err := s.logs.Fetch(r.Context(), q)
	if err != nil {
		s.logger.Error("failed to fetch stock logs", "query", q.Values().Encode(), "error", err)
		out.Error = "Failed to load logs"
		return out
	}
	out.Result = res
	out.PrevQuery = q.Step(-1, res.TotalPages).Values().Encode()
	out.NextQuery = q.Step(1, res.TotalPages).Values().Encode()
	return out
}

func (s *Server) handleStockLogs(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	if v.Has(appliedParam) {
		// A natively submitted filter form starts again from the first page.
		v.Del("page")
	}
	q := service.ParseLogQuery(v)
	data := map[string]any{
		"Options": s.logs.Options(r.Context()),
		"Results": s.fetchLogResults(r, q),
	}
	s.renderPage(w, http.StatusOK, s.page(r, "stocks-logs", data),
		"pages/stock_logs.html", "partials/log_results.html")
}

// handleStockLogResults answers the filter form and pagination links.
func (s *Server) handleStockLogResults(w http.ResponseWriter, r *http.Request) {
	q := resultsQuery(r.URL.Query(), r.Header.Get("HX-Trigger-Name"))

	res := s.fetchLogResults(r, q)
	w.Header().Set("HX-Push-Url", "/stocks-logs?"+q.Values().Encode())
	s.renderPartial(w, http.StatusOK, "log_results_update", res, "partials/log_results.html")
}

// handleExportStockLogs streams the API's rendering of the filtered log as a
// download. Failures are logged and answered with 204 so the browser stays
// on the log view.
func (s *Server) handleExportStockLogs(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	q := service.ParseLogQuery(r.URL.Query())

	exp, err := s.logs.Export(r.Context(), format, q)
	if err != nil {
		s.logger.Error("stock log export failed", "format", format, "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	defer func() {
		if err := exp.Body.Close(); err != nil {
			s.logger.Error("failed to close export body", "error", err)
		}
	}()

	filename := fmt.Sprintf("stock_logs_%s.%s", s.now().Format("20060102"), format)
	w.Header().Set("Content-Type", exp.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, exp.Body); err != nil {
		s.logger.Error("failed to stream export", "format", format, "error", err)
	}
}

// resultsQuery builds the query for a results request. Requests from the
// filter form start from the applied query, so only the control that
// triggered the request changes it and values left in other controls are
// ignored. A triggering control or clear button returns to page 1.
func resultsQuery(v url.Values, trigger string) service.LogQuery {
	q := service.ParseLogQuery(v)
	if v.Has(appliedParam) {
		applied, err := url.ParseQuery(v.Get(appliedParam))
		if err == nil {
			q = service.ParseLogQuery(applied)
		}
	}
	if service.IsLogField(trigger) {
		q = q.WithFilter(service.LogField(trigger), v.Get(trigger))
	}
	if name := v.Get("clear"); service.IsLogField(name) {
		q = q.Clear(service.LogField(name))
	}
	return q
}
