package routers

import (
	"github.com/go-chi/chi/v5"

	"healthbridge-service/internal/app/delivery/http/controllers"
	"healthbridge-service/internal/app/delivery/http/middlewares"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, reconciliationController *controllers.ReconciliationController) {
	router.Post("/{patient_id}/reconcile", reconciliationController.ReconcilePatient)
	router.Get("/{patient_id}/report", reconciliationController.GetLatestReport)
	router.Get("/{patient_id}/runs", reconciliationController.ListRunsByPatientID)
}
