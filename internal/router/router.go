package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-dealership/internal/config"
	"go-dealership/internal/handler"
	"go-dealership/internal/middleware"
	"go-dealership/internal/service"
)

type Handlers struct {
	Account   *handler.AccountHandler
	Inventory *handler.InventoryHandler
	Review    *handler.ReviewHandler
}

func New(
	cfg *config.Config,
	session *middleware.Session,
	reviews *service.ReviewService,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(session.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	fileServer := http.FileServer(http.Dir(cfg.PublicRoot))
	r.Handle("/css/*", fileServer)
	r.Handle("/js/*", fileServer)
	r.Handle("/images/*", fileServer)

	r.NotFound(h.Inventory.NotFound)

	r.Group(func(site chi.Router) {
		site.Use(middleware.Timeout(cfg.RequestTimeout))

		site.Get("/", h.Inventory.Home)

		site.Route("/inv", func(inv chi.Router) {
			inv.Get("/type/{classificationID}", h.Inventory.Classification)
			inv.Get("/detail/{vehicleID}", h.Inventory.Detail(reviews))

			inv.Group(func(staff chi.Router) {
				staff.Use(session.RequireStaff)
				staff.Get("/", h.Inventory.Management)
				staff.Get("/add-classification", h.Inventory.ShowAddClassification)
				staff.Post("/add-classification", h.Inventory.AddClassification)
				staff.Post("/delete-classification/{classificationID}", h.Inventory.DeleteClassification)
				staff.Get("/add-inventory", h.Inventory.ShowAddVehicle)
				staff.Post("/add-inventory", h.Inventory.AddVehicle)
				staff.Get("/edit/{vehicleID}", h.Inventory.ShowEditVehicle)
				staff.Post("/update", h.Inventory.UpdateVehicle)
				staff.Get("/delete/{vehicleID}", h.Inventory.ShowDeleteVehicle)
				staff.Post("/delete", h.Inventory.DeleteVehicle)
			})
		})

		site.Route("/account", func(account chi.Router) {
			account.Get("/login", h.Account.ShowLogin)
			account.Post("/login", h.Account.Login)
			account.Get("/register", h.Account.ShowRegister)
			account.Post("/register", h.Account.Register)
			account.Get("/logout", h.Account.Logout)

			account.Group(func(auth chi.Router) {
				auth.Use(session.RequireLogin)
				auth.Get("/", h.Account.Management)
				auth.Get("/update/{accountID}", h.Account.ShowUpdate)
				auth.Post("/update", h.Account.Update)
				auth.Post("/update-password", h.Account.UpdatePassword)
			})
		})

		site.Route("/review", func(review chi.Router) {
			review.Use(session.RequireLogin)
			review.Post("/add", h.Review.Add)
			review.Get("/edit/{reviewID}", h.Review.ShowEdit)
			review.Post("/update", h.Review.Update)
			review.Get("/delete/{reviewID}", h.Review.ShowDelete)
			review.Post("/delete", h.Review.Delete)
		})
	})

	// The JSON feed backs the management screen's inventory table; it is
	// staff-gated like the pages that consume it.
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.CORS(cfg.CORSOrigins))
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.With(session.RequireStaff).Get("/inventory/{classificationID}", h.Inventory.InventoryJSON)
	})

	return r
}
