package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elektrolab/stockroom-backend/api/controllers"
	"github.com/elektrolab/stockroom-backend/api/middleware"
	"github.com/elektrolab/stockroom-backend/internal/assembly"
	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/internal/vendors"
	"github.com/elektrolab/stockroom-backend/internal/verification"
	"github.com/elektrolab/stockroom-backend/pkg/config"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
	"github.com/elektrolab/stockroom-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	redisClient *redis.Client,
	assemblyService assembly.Service,
	inventoryService inventory.Service,
	vendorService vendors.Service,
	verificationService verification.Service,
) http.Handler {
	// A typed nil *redis.Client must not reach the middleware as a live store.
	var idempotencyStore redis.IdempotencyStore
	var cachePinger controllers.Pinger
	if redisClient != nil {
		idempotencyStore = redisClient
		cachePinger = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, cachePinger, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/assemblies", func(r chi.Router) {
			r.Get("/", controllers.ListAssemblies(assemblyService, logg))
			r.Post("/", controllers.CreateAssembly(assemblyService, logg))
			r.Post("/check-inventory", controllers.CheckInventory(assemblyService, logg))
			r.Get("/{name}", controllers.GetAssembly(assemblyService, logg))
			r.Put("/{name}/status", controllers.UpdateAssemblyStatus(assemblyService, logg))
			r.Delete("/{name}", controllers.DeleteAssembly(assemblyService, logg))
			r.Post("/{name}/stock-status", controllers.RefreshStockStatus(assemblyService, logg))
		})

		r.Get("/component-types", controllers.ListComponentTypes())

		r.Route("/components", func(r chi.Router) {
			r.Get("/", controllers.ListComponents(inventoryService, logg))
			r.Get("/critical", controllers.CriticalComponents(inventoryService, logg))
			r.Post("/verify-request", controllers.RequestComponentVerification(verificationService, logg))
			r.Post("/verify-confirm", controllers.ConfirmComponentVerification(verificationService, logg))
			r.Get("/{type}/{id}", controllers.GetComponent(inventoryService, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(vendorService, logg))
			r.Post("/", controllers.CreateVendor(vendorService, logg))
			r.Put("/{id}", controllers.UpdateVendor(vendorService, logg))
			r.Delete("/{id}", controllers.DeleteVendor(vendorService, logg))
		})
	})

	return r
}
