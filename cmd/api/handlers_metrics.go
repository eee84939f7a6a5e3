// cmd/api/handlers_metrics.go
// @description Prometheus metrics.
// @methods GET
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *applicationDependencies) metricsRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
}
