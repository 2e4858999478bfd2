package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"comanda-pos/internal/auth"
	cajahandlers "comanda-pos/internal/caja/handlers"
	comandahandlers "comanda-pos/internal/comanda/handlers"
	"comanda-pos/internal/common/httpx"
	mesahandlers "comanda-pos/internal/mesa/handlers"
	menuhandlers "comanda-pos/internal/menu/handlers"
	orderhandlers "comanda-pos/internal/order/handlers"
)

type Deps struct {
	Orders    *orderhandlers.OrderHandler
	Comanda   *comandahandlers.ComandaHandler
	Caja      *cajahandlers.CajaHandler
	Mesas     *mesahandlers.MesaHandler
	Menu      *menuhandlers.MenuHandler
	Auth      *auth.Handler
	JWTSecret string
}

// Router mounts the whole POS surface. Caja routes sit behind the
// session gate; everything else is open to the floor terminals.
func Router(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler)
		r.Get("/time", timeHandler)

		r.Get("/mesas", d.Mesas.ListTables)
		r.Get("/menu", d.Menu.List)
		r.Get("/menu/{id}", d.Menu.Get)

		r.Post("/pedidos", d.Orders.CreateOrder)
		r.Get("/pedidos/{id}", d.Orders.GetOrder)
		r.Post("/pedidos/{id}/items", d.Orders.AppendItem)

		r.Get("/comanda", d.Comanda.ListActiveOrders)
		r.Post("/comanda/{id}/start", d.Comanda.StartPreparing)
		r.Post("/comanda/{id}/served", d.Comanda.MarkServed)

		r.Post("/auth/login", d.Auth.Login)

		r.Route("/caja", func(r chi.Router) {
			r.Use(auth.RequireAuth(d.JWTSecret))
			r.Get("/pedidos/{id}", d.Caja.GetBill)
			r.Post("/pedidos/{id}/cerrar", d.Caja.CloseOrder)
			r.Get("/stats", d.Caja.DailyStats)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// timeHandler exists for client clock sync only.
func timeHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"server_time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
