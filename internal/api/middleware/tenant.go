package middleware

import (
	"net/http"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	"github.com/barbersched/BarberSched-BookingService/internal/tenant"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
)

// Tenant middleware маршрутизации тенантов. Резолвит слаг барбершопа
// из заголовка X-Tenant-ID в пул соединений и кладет его в контекст
// запроса; репозитории достают executor оттуда. Пустой заголовок
// означает дефолтного тенанта.
func Tenant(registry *tenant.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := r.Header.Get("X-Tenant-ID")

			db, ok := registry.Resolve(slug)
			if !ok {
				handlers.RespondNotFound(w, "неизвестный тенант")
				return
			}

			ctx := dbmetrics.WithDB(r.Context(), db)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
