package web

import (
	"bytes"
	"html/template"
	"maps"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vbonduro/pantraqa/internal/domain"
	"github.com/vbonduro/pantraqa/internal/service"
)

const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"

	logTimeLayout = "Jan 2, 2006 3:04 PM"

	// chartRowHeight is the vertical space, in pixels, of one drink in the
	// stock-log chart.
	chartRowHeight = 48
)

var capabilities = map[string]domain.Capability{
	"manageStock":   domain.CapManageStock,
	"manageCatalog": domain.CapManageCatalog,
	"viewLogs":      domain.CapViewLogs,
	"manageUsers":   domain.CapManageUsers,
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"can": func(u *domain.User, name string) bool {
			c, ok := capabilities[name]
			return ok && u.Can(c)
		},
		"ago":         humanize.Time,
		"logTime":     func(t time.Time) string { return t.Local().Format(logTimeLayout) },
		"comma":       func(n int) string { return humanize.Comma(int64(n)) },
		"roles":       func() []domain.Role { return domain.Roles },
		"locTypes":    func() []domain.LocationType { return domain.LocationTypes },
		"chartRows":   chartRows,
		"chartHeight": func(rows int) int { return rows * chartRowHeight },
		"chartOffset": func(i int) int { return i * chartRowHeight },
		"fieldError":  fieldError,
		"idStr":       func(id int64) string { return strconv.FormatInt(id, 10) },
		"query":       func(encoded string) template.URL { return template.URL(encoded) },
	}
}

// page merges the values every full page needs into data: the signed-in user,
// the pending flash message and the active nav entry.
func (s *Server) page(r *http.Request, nav string, data map[string]any) map[string]any {
	ctx := r.Context()
	out := map[string]any{
		"User":      currentUser(r),
		"ActiveNav": nav,
	}
	if msg := s.sessions.PopString(ctx, flashKey); msg != "" {
		out["Flash"] = msg
		out["FlashType"] = s.sessions.PopString(ctx, flashTypeKey)
	}
	maps.Copy(out, data)
	return out
}

// setFlash stores a message shown once on the next full page render.
func (s *Server) setFlash(r *http.Request, msg, kind string) {
	s.sessions.Put(r.Context(), flashKey, msg)
	s.sessions.Put(r.Context(), flashTypeKey, kind)
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, status int, data any, files ...string) {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, append([]string{"base.html"}, files...)...)
	if err != nil {
		s.logger.Error("failed to parse page templates", "files", files, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	s.execute(w, status, tmpl, "base", data)
}

// renderPartial parses files and executes the template called name.
func (s *Server) renderPartial(w http.ResponseWriter, status int, name string, data any, files ...string) {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		s.logger.Error("failed to parse partial templates", "files", files, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	s.execute(w, status, tmpl, name, data)
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func (s *Server) execute(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type toast struct {
	Message string
	Kind    string
}

// toastHTML renders an out-of-band toast that htmx swaps into the page's
// toast slot alongside the main fragment.
func (s *Server) toastHTML(msg, kind string) template.HTML {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, "partials/toast.html")
	if err != nil {
		s.logger.Error("failed to parse toast template", "error", err)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "toast", toast{Message: msg, Kind: kind}); err != nil {
		s.logger.Error("failed to render toast", "error", err)
		return ""
	}
	return template.HTML(buf.String())
}

// writeToast answers an htmx request with only a toast. The swap of the
// triggering element is suppressed.
func (s *Server) writeToast(w http.ResponseWriter, msg, kind string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.toastHTML(msg, kind)))
}

func (s *Server) renderForbidden(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		s.writeToast(w, "You do not have permission to perform this action.", "error")
		return
	}
	s.renderPage(w, http.StatusForbidden, s.page(r, "", nil), "pages/forbidden.html")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusNotFound, s.page(r, "", nil), "pages/not_found.html")
}

// chartRow is one drink of the stock-log chart with bar widths in percent.
type chartRow struct {
	service.ChartBar
	InPct  int
	OutPct int
}

func chartRows(bars []service.ChartBar) []chartRow {
	top := service.MaxBarValue(bars)
	rows := make([]chartRow, len(bars))
	for i, b := range bars {
		rows[i] = chartRow{ChartBar: b, InPct: b.In * 100 / top, OutPct: b.Out * 100 / top}
	}
	return rows
}

func fieldError(errs map[string]string, name string) string {
	return errs[name]
}
