package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Processing
	mux.HandleFunc("/api/content/process", s.app.AnalysisHandler.ProcessHandler) // POST - start async analysis run
	mux.HandleFunc("/api/content/status", s.app.AnalysisHandler.StatusHandler)   // GET - poll run status

	// API routes - Content
	mux.HandleFunc("/api/content/stats", s.app.ContentHandler.StatsHandler) // GET - item counts by state
	mux.HandleFunc("/api/content", s.app.ContentHandler.ListHandler)        // GET - list items
	mux.HandleFunc("/api/content/", s.handleContentRoutes)                  // GET/DELETE /{id} and derived views

	// API routes - Test authoring (two-pass)
	mux.HandleFunc("/api/tests/questions", s.app.TestGenHandler.QuestionsHandler) // POST - pass 1
	mux.HandleFunc("/api/tests/answers", s.app.TestGenHandler.AnswersHandler)     // POST - pass 2

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleContentRoutes dispatches /api/content/{id} and its derived-view
// subpaths to the appropriate handler.
func (s *Server) handleContentRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/content/")
	parts := strings.SplitN(rest, "/", 2)

	contentID := parts[0]
	if contentID == "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}

	// /api/content/{id}
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.app.ContentHandler.GetHandler(w, r, contentID)
		case http.MethodDelete:
			s.app.ContentHandler.DeleteHandler(w, r, contentID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/content/{id}/{view}
	switch parts[1] {
	case "summary":
		s.app.ViewsHandler.SummaryHandler(w, r, contentID)
	case "questions":
		s.app.ViewsHandler.QuestionsHandler(w, r, contentID)
	case "concepts":
		s.app.ViewsHandler.ConceptsHandler(w, r, contentID)
	case "related":
		s.app.ViewsHandler.RelatedHandler(w, r, contentID)
	case "ask":
		s.app.QAHandler.AskHandler(w, r, contentID)
	default:
		s.app.APIHandler.NotFoundHandler(w, r)
	}
}
