package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/handler/chat"
	contentHandler "github.com/zhouzirui/ward-bot/backend/internal/handler/content"
	"github.com/zhouzirui/ward-bot/backend/internal/handler/stream"
	"github.com/zhouzirui/ward-bot/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/ward-bot/backend/internal/middleware"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
	chatService "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
	"github.com/zhouzirui/ward-bot/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(source content.Source, chatSvc *chatService.Service, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(log))
	r.Use(middlewarePkg.Recovery(log))
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		chat.New(chatSvc).RegisterRoutes(api)
		contentHandler.New(source, log).RegisterRoutes(api)
		stream.New(chatSvc, log).RegisterRoutes(api)
		ws.New(chatSvc, log).RegisterRoutes(api)
	})

	return r
}
