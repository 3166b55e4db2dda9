// Package usecase wires the validation engine and the renderer into the
// three operations of the service: validate, preview and export. Invalid
// data never reaches a renderer.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/validate"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidDocument signals that a snapshot failed the authoritative
// validation; the violation list travels separately.
var ErrInvalidDocument = errors.New("document failed validation")

// PDFRenderer turns self-contained HTML into PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ExportsRepo records export attempts, best-effort.
type ExportsRepo interface {
	Save(ctx context.Context, j *domain.ExportJob) error
}

type Service struct {
	server     *validate.Server
	pdf        PDFRenderer
	repo       ExportsRepo
	log        *logrus.Logger
	archiveDir string
}

func NewService(server *validate.Server, pdf PDFRenderer, repo ExportsRepo, log *logrus.Logger, archiveDir string) *Service {
	return &Service{server: server, pdf: pdf, repo: repo, log: log, archiveDir: archiveDir}
}

// Validate runs the authoritative evaluation on a raw document map.
func (s *Service) Validate(raw map[string]interface{}) validate.Result {
	return s.server.Evaluate(raw)
}

// Preview validates and, only when valid, renders the HTML preview.
func (s *Service) Preview(raw map[string]interface{}) (string, validate.Result, error) {
	res := s.server.Evaluate(raw)
	if !res.Valid {
		return "", res, nil
	}
	doc, err := model.FromMap(raw)
	if err != nil {
		return "", res, err
	}
	html, err := render.HTML(render.BuildSections(doc))
	return html, res, err
}

// PreviewDocument renders a preview for a typed snapshot after the
// authoritative re-check. The editing session calls this asynchronously.
func (s *Service) PreviewDocument(ctx context.Context, doc *model.ResumeDocument) (string, error) {
	res, err := s.server.EvaluateDocument(doc)
	if err != nil {
		return "", err
	}
	if !res.Valid {
		return "", ErrInvalidDocument
	}
	return render.HTML(render.BuildSections(doc))
}

// Export validates the raw document and, only when valid, produces the
// PDF. The evaluation here is the server-side re-check required
// immediately before rendering: there is no path to the renderer around
// it.
func (s *Service) Export(ctx context.Context, raw map[string]interface{}) ([]byte, validate.Result, error) {
	res := s.server.Evaluate(raw)
	if !res.Valid {
		s.record(ctx, domain.ExportRejected, map[string]interface{}{"violations": len(res.Errors)})
		return nil, res, nil
	}
	doc, err := model.FromMap(raw)
	if err != nil {
		return nil, res, err
	}
	return s.renderExport(ctx, doc)
}

// ExportDocument is the typed-snapshot variant used by editing sessions;
// it revalidates through the same authoritative path.
func (s *Service) ExportDocument(ctx context.Context, doc *model.ResumeDocument) ([]byte, validate.Result, error) {
	res, err := s.server.EvaluateDocument(doc)
	if err != nil {
		return nil, res, err
	}
	if !res.Valid {
		s.record(ctx, domain.ExportRejected, map[string]interface{}{"violations": len(res.Errors)})
		return nil, res, nil
	}
	return s.renderExport(ctx, doc)
}

func (s *Service) renderExport(ctx context.Context, doc *model.ResumeDocument) ([]byte, validate.Result, error) {
	sections := render.BuildSections(doc)

	if lines, ok := render.FitsOnePage(sections); !ok {
		res := validate.Result{
			Valid: false,
			Errors: []validate.Violation{{
				Field:   "document",
				Kind:    validate.KindContentOverflow,
				Message: fmt.Sprintf("Projected %d lines exceed the one-page capacity of %d", lines, render.LinesPerPage),
			}},
		}
		s.record(ctx, domain.ExportRejected, map[string]interface{}{"projected_lines": lines})
		return nil, res, nil
	}

	html, err := render.PrintHTML(sections)
	if err != nil {
		return nil, validate.Result{Valid: true}, err
	}

	// produce PDF with retry and signature validation
	var pdfBytes []byte
	var renderErr error
	attempts := 3
	for i := 0; i < attempts; i++ {
		pdfBytes, renderErr = s.pdf.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdfBytes) > 0 && strings.HasPrefix(string(pdfBytes), "%PDF") {
				break
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		s.log.WithFields(logrus.Fields{"attempt": i + 1, "error": renderErr}).Warn("render attempt failed")
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, validate.Result{Valid: true}, ctx.Err()
			}
		}
	}
	if renderErr != nil {
		s.record(ctx, domain.ExportFailed, map[string]interface{}{"error": renderErr.Error()})
		return nil, validate.Result{Valid: true}, fmt.Errorf("rendering failed after %d attempts: %w", attempts, renderErr)
	}

	s.archive(pdfBytes)
	s.record(ctx, domain.ExportCompleted, map[string]interface{}{"pdf_size": len(pdfBytes)})
	return pdfBytes, validate.Result{Valid: true}, nil
}

// archive keeps a best-effort copy of the generated artifact on disk.
func (s *Service) archive(pdf []byte) {
	if s.archiveDir == "" {
		return
	}
	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		s.log.WithField("error", err).Warn("unable to create archive dir")
		return
	}
	name := fmt.Sprintf("resume_%s_%s.pdf", time.Now().Format("20060102T150405"), uuid.New().String()[:8])
	if err := os.WriteFile(filepath.Join(s.archiveDir, name), pdf, 0o644); err != nil {
		s.log.WithField("error", err).Warn("unable to archive export")
	}
}

// record saves the audit row; failures are logged, never propagated.
func (s *Service) record(ctx context.Context, status string, meta map[string]interface{}) {
	if s.repo == nil {
		return
	}
	now := time.Now()
	job := &domain.ExportJob{
		ID:        uuid.New(),
		Status:    status,
		Metadata:  meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, job); err != nil {
		s.log.WithField("error", err).Warn("unable to record export job")
	}
}
