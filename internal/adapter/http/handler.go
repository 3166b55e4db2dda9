package http

import (
	"encoding/json"

	"resume-builder/internal/usecase"
	"resume-builder/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *usecase.Service
	log *logrus.Logger
}

func NewHandler(svc *usecase.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the API. Every request is self-contained: the document
// travels in the body and nothing is kept between calls.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
	app.Post("/api/validate", h.Validate)
	app.Post("/api/preview", h.Preview)
	app.Post("/api/export", h.Export)
}

func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Resume Builder API"})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "resume-builder"})
}

func parseDocument(c *fiber.Ctx) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

type validateResponse struct {
	Valid    bool                   `json:"valid"`
	Errors   []validate.Violation   `json:"errors"`
	Warnings []validate.Violation   `json:"warnings,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func (h *Handler) Validate(c *fiber.Ctx) error {
	raw, err := parseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	res := h.svc.Validate(raw)
	resp := validateResponse{Valid: res.Valid, Errors: emptyIfNil(res.Errors), Warnings: res.Warnings}
	if res.Valid {
		resp.Data = raw // echo the accepted document back
	}
	return c.JSON(resp)
}

type previewResponse struct {
	Valid  bool                 `json:"valid"`
	HTML   *string              `json:"html"`
	Errors []validate.Violation `json:"errors"`
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	raw, err := parseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	html, res, err := h.svc.Preview(raw)
	if err != nil {
		h.log.WithField("error", err).Error("preview rendering failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "preview rendering failed"})
	}
	resp := previewResponse{Valid: res.Valid, Errors: emptyIfNil(res.Errors)}
	if res.Valid {
		resp.HTML = &html
	}
	return c.JSON(resp)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	raw, err := parseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	pdf, res, err := h.svc.Export(c.Context(), raw)
	if err != nil {
		h.log.WithField("error", err).Error("export failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}
	if !res.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed - export blocked",
			"errors":  emptyIfNil(res.Errors),
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=resume.pdf`)
	return c.Send(pdf)
}

func emptyIfNil(vs []validate.Violation) []validate.Violation {
	if vs == nil {
		return []validate.Violation{}
	}
	return vs
}
