package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	appaccount "bingo-hall/internal/app/account"
	apphouse "bingo-hall/internal/app/house"
	apprecharge "bingo-hall/internal/app/recharge"
	"bingo-hall/internal/ledger"
	"bingo-hall/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, led *ledger.Ledger) *chi.Mux {
	accountHandlers := NewAccountHandlers(appaccount.NewService(st))
	houseHandlers := NewHouseHandlers(apphouse.NewService(led, st))
	rechargeHandlers := NewRechargeHandlers(apprecharge.NewService(led, st))
	adminHandlers := NewAdminHandlers(st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Use(AuthMiddleware(st))

		r.Get("/accounts/{account_id}", accountHandlers.Get())
		r.Get("/accounts/{account_id}/balance", accountHandlers.Balance())
		r.Get("/houses/{house_id}", houseHandlers.Get())
		r.Get("/recharges", rechargeHandlers.List())
		r.Get("/agent-recharges", rechargeHandlers.ListAgent())

		// Top-ups are paid by the caller; agents fund houses from their
		// own package balance, the super-admin is the unlimited source.
		r.With(RequireRole(store.RoleAgent, store.RoleSuperAdmin)).
			Post("/recharges", rechargeHandlers.CreateHouse())

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(store.RoleSuperAdmin))
			r.Post("/accounts", accountHandlers.Create())
			r.Post("/houses", houseHandlers.Create())
			r.Post("/houses/{house_id}/cashier", houseHandlers.AssignCashier())
			r.Put("/recharges/{recharge_id}", rechargeHandlers.UpdateHouse())
			r.Post("/agent-recharges", rechargeHandlers.CreateAgent())
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
