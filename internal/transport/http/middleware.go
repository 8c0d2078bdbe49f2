package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"bingo-hall/internal/logging"
	"bingo-hall/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

type callerContextKey struct{}

func CallerFromContext(ctx context.Context) (*store.Account, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(*store.Account)
	return caller, ok
}

// AuthMiddleware resolves the authenticated caller. Authentication itself is
// the upstream gateway's job; this layer trusts the account id it forwards
// and only resolves it to a stored account.
func AuthMiddleware(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID := r.Header.Get("X-Account-ID")
			if accountID == "" {
				WriteHTTPError(w, http.StatusUnauthorized, "missing_account")
				return
			}
			caller, err := st.GetAccount(r.Context(), accountID)
			if err != nil {
				WriteHTTPError(w, http.StatusUnauthorized, "unknown_account")
				return
			}
			ctx := context.WithValue(r.Context(), callerContextKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				WriteHTTPError(w, http.StatusUnauthorized, "missing_account")
				return
			}
			if !allowed[caller.Role] {
				WriteHTTPError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func APILogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:              slog.LevelInfo,
			Schema:             httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogRequestBody:     func(*http.Request) bool { return false },
			LogResponseBody:    func(*http.Request) bool { return false },
			LogRequestHeaders:  []string{},
			LogResponseHeaders: []string{},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}
