package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
	"github.com/zhouzirui/ward-bot/backend/pkg/utils"
)

// reloader 由文件来源实现
type reloader interface {
	Reload() error
}

// Handler 内容表的只读HTTP处理器
type Handler struct {
	source content.Source
	log    zerolog.Logger
}

// New 创建内容处理器
func New(source content.Source, log zerolog.Logger) *Handler {
	return &Handler{
		source: source,
		log:    log.With().Str("component", "content").Logger(),
	}
}

// RegisterRoutes 注册内容相关路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/content", func(r chi.Router) {
		r.Get("/emergency", h.handleListEmergency)
		r.Get("/faq", h.handleListFAQ)
		r.Get("/categories", h.handleListCategories)
		r.Get("/contacts", h.handleListContacts)
		r.Get("/contacts/{department}", h.handleGetContact)
		r.Post("/reload", h.handleReload)
	})
}

// CategorySummary 分类的公开视图
type CategorySummary struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.source.Current().Categories()
	out := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategorySummary{Name: c.Name, Keywords: c.Keywords})
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListEmergency(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.source.Current().Emergency())
}

func (h *Handler) handleListFAQ(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.source.Current().FAQ())
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.source.Current().Departments())
}

func (h *Handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "department")
	contact, ok := h.source.Current().Contact(name)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "department not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, content.Department{Name: name, Contact: contact})
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	rl, ok := h.source.(reloader)
	if !ok {
		utils.RespondError(w, http.StatusConflict, "content is not file backed")
		return
	}
	if err := rl.Reload(); err != nil {
		h.log.Warn().Err(err).Msg("manual reload rejected")
		utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
