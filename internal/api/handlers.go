package api

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/katakuxiko/askai/internal/model"
	"github.com/katakuxiko/askai/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryLister is implemented by store.PgStore.
type HistoryLister interface {
	Recent(limit int) ([]model.HistoryEntry, error)
}

// Handler holds what the HTTP handlers need.
type Handler struct {
	ask     *service.AskService
	history HistoryLister
}

// NewHandler builds the handler set. history is nil when the journal is disabled.
func NewHandler(ask *service.AskService, history HistoryLister) *Handler {
	return &Handler{ask: ask, history: history}
}

// Health is a liveness check.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// AskAI answers every request with {"answer": ...}, including panics
// raised while handling it. Only JSON bodies are read; anything else is
// treated as an empty request.
func (h *Handler) AskAI(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ask-ai panic: %v", r)
			err = respond(c, h.ask.Observe(model.Failed(fmt.Errorf("%v", r))))
		}
	}()

	var req model.AskRequest
	if body := c.Body(); len(body) > 0 && c.Is("json") {
		if err := c.App().Config().JSONDecoder(body, &req); err != nil {
			log.Printf("ask-ai bad body: %v", err)
			return respond(c, h.ask.Observe(model.InvalidBody()))
		}
	}

	return respond(c, h.ask.Ask(req))
}

// History lists recent asks, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	if h.history == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "history is disabled"})
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		log.Printf("history error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}
	return c.JSON(entries)
}

func respond(c *fiber.Ctx, o model.Outcome) error {
	return c.Status(o.Status()).JSON(o.Response())
}
