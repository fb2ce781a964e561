package routers

import (
	"github.com/go-chi/chi/v5"

	"healthbridge-service/internal/app/delivery/http/controllers"
	"healthbridge-service/internal/app/delivery/http/middlewares"
)

func attachRunRoutes(router chi.Router, middlewares *middlewares.Middlewares, reconciliationController *controllers.ReconciliationController) {
	router.Get("/{run_id}", reconciliationController.FindRunByID)
}
