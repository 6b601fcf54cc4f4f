package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"todo-presets-backend/internal/analytics"
	"todo-presets-backend/internal/app"
	"todo-presets-backend/internal/config"
	"todo-presets-backend/internal/presets"
	"todo-presets-backend/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	a, err := app.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	log.Printf("connected to %s", cfg.DBDriver)

	r := mux.NewRouter()

	// Health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	tasks.New(a.WS, a.DB).Register(r)
	presets.New(a.WS, a.DB).Register(r)

	r.HandleFunc("/events", analytics.RecentEventsHandler(a.DB)).Methods(http.MethodGet)
	r.HandleFunc("/events", analytics.ClientEventHandler(a.DB)).Methods(http.MethodPost)

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type", "X-Platform", "X-Session-Id", "X-App-Version",
			"X-Device-Locale", "Idempotency-Key", "X-Source-Event-Key",
		},
	})

	handler := c.Handler(r)

	log.Printf("API server is running on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, handler))
}
