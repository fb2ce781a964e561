package routers

import (
	"github.com/go-chi/chi/v5"

	"healthbridge-service/internal/app/delivery/http/controllers"
	"healthbridge-service/internal/app/delivery/http/middlewares"
)

func attachReferenceRoutes(router chi.Router, middlewares *middlewares.Middlewares, referenceController *controllers.ReferenceController) {
	router.Get("/{table_name}", referenceController.GetReferenceTable)
}
