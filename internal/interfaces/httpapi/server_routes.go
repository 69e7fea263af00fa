package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{season}/tracker", handler.GetTracker)
	mux.HandleFunc("PUT /v1/seasons/{season}/matches", handler.RecordMatch)
	mux.HandleFunc("GET /v1/seasons/{season}/leaderboards/attendance", handler.GetAttendance)
	mux.HandleFunc("GET /v1/seasons/{season}/leaderboards/performance", handler.GetPerformance)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/seasons/rebuild", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSeasonRebuild)))
}
