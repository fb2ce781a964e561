package routers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"healthbridge-service/internal/app/delivery/http/controllers"
	"healthbridge-service/internal/app/delivery/http/middlewares"
	"healthbridge-service/internal/pkg/dto/responses"
)

func newReferenceTestRouter() *chi.Mux {
	logger := zap.NewNop()
	referenceController := controllers.NewReferenceController(logger)

	middlewareInstance := &middlewares.Middlewares{Log: logger}

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	attachReferenceRoutes(router, middlewareInstance, referenceController)
	return router
}

func TestReferenceRouter_GetReferenceTable(t *testing.T) {
	router := newReferenceTestRouter()

	t.Run("interactions table is served", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/interactions", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var envelope responses.ResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)

		rules, ok := envelope.Data.([]interface{})
		assert.True(t, ok)
		assert.NotEmpty(t, rules)
	})

	t.Run("care gap rules table is served", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/care-gap-rules", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("cross reactivity table is served", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cross-reactivity", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown table is not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/frequencies", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var envelope responses.ResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.False(t, envelope.Success)
	})
}
