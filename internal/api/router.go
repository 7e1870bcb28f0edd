package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *APIHandler, allowedOrigins []string) http.Handler {

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealth)

	mux.HandleFunc("POST /api/upload", h.HandleUpload)
	mux.HandleFunc("POST /api/scan-pdf", h.HandleScanPDF)
	mux.HandleFunc("POST /api/scan-and-analyze", h.HandleScanAndAnalyze)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("POST /api/ask", h.HandleAsk)
	mux.HandleFunc("POST /api/chat", h.HandleChat)

	mux.HandleFunc("POST /api/jobs", h.HandleCreateJob)
	mux.HandleFunc("GET /api/jobs/{jobId}", h.HandleGetJob)

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", h.HandleNotFound)

	return withCORS(allowedOrigins, withLogging(h.logger, mux))
}
