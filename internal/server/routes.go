package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Company
	mux.HandleFunc("/api/company", s.app.CompanyHandler.ReportHandler) // GET ?ticker=&years=&horizons=&news=

	// API routes - Market
	mux.HandleFunc("/api/market/news", s.app.MarketHandler.NewsHandler)   // GET ?category=&count=
	mux.HandleFunc("/api/market/rates", s.app.MarketHandler.RatesHandler) // GET ?horizon=
	mux.HandleFunc("/api/market/index", s.app.MarketHandler.IndexHandler) // GET ?sector=

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched routes
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
