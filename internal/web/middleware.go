package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	csrf "filippo.io/csrf/gorilla"
	"github.com/google/uuid"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/auth"
	"github.com/vbonduro/pantraqa/internal/domain"
)

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// csrfProtect rejects cross-origin state-changing requests using Fetch
// metadata headers. No token or key is involved.
func csrfProtect(trustedOrigins []string) func(http.Handler) http.Handler {
	opts := []csrf.Option{csrf.ErrorHandler(http.HandlerFunc(csrfFailed))}
	if len(trustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(trustedOrigins))
	}
	return csrf.Protect(nil, opts...)
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-origin request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// requestLogger tags the request with an id, which is also forwarded to the
// API, and logs the outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		r = r.WithContext(api.WithRequestID(r.Context(), reqID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", reqID,
			"htmx", isHTMX(r),
		)
	})
}

type stateKey struct{}

// loadAuth resolves the session's auth state once per request, before any
// handler renders, and attaches the API token to the request context.
func (s *Server) loadAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := s.auth.Load(r.Context())
		ctx := context.WithValue(r.Context(), stateKey{}, st)
		if st.Token != "" {
			ctx = api.WithToken(ctx, st.Token)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authState(ctx context.Context) auth.State {
	st, _ := ctx.Value(stateKey{}).(auth.State)
	return st
}

func currentUser(r *http.Request) *domain.User {
	return authState(r.Context()).User
}

// guard applies auth.Decide to every route in the group.
func (s *Server) guard(req auth.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := auth.Decide(req, authState(r.Context()))
			if d == auth.Allow {
				next.ServeHTTP(w, r)
				return
			}
			redirect(w, r, d.Target())
		})
	}
}

// requireCapability renders the permission page when the signed-in role
// lacks c.
func (s *Server) requireCapability(c domain.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !currentUser(r).Can(c) {
				s.logger.Info("permission denied", "path", r.URL.Path, "role", currentUser(r).Role)
				s.renderForbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// singleSubmit rejects a form whose nonce has already been used.
func (s *Server) singleSubmit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.submits.claim(r.PostFormValue(nonceField)) {
			s.logger.Info("duplicate form submission", "path", r.URL.Path)
			http.Error(w, "This form was already submitted.", http.StatusConflict)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitLogins throttles login attempts per client IP.
func (s *Server) limitLogins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientIP(r)) {
			s.logger.Warn("login rate limit exceeded", "ip", clientIP(r))
			s.renderLoginForm(w, r, http.StatusTooManyRequests, loginForm{
				Email: r.PostFormValue("email"),
				Error: "Too many login attempts. Please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect sends the browser to target. htmx requests get HX-Redirect so the
// whole page navigates instead of a fragment being swapped.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
