// Package session models one single-user editing round-trip: debounced
// inline validation, asynchronous preview with stale-response discarding,
// and single-flight export. A session owns no document state beyond the
// latest snapshot; snapshots themselves are immutable values.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-builder/internal/model"
	"resume-builder/internal/validate"
)

var (
	// ErrExportInFlight rejects a second export while one is outstanding.
	ErrExportInFlight = errors.New("export already in progress")
	// ErrStaleSnapshot reports an edit that landed between export-time
	// revalidation and delivery of the artifact.
	ErrStaleSnapshot = errors.New("document changed during export")
	// ErrInvalidDocument reports a snapshot the authoritative check refused.
	ErrInvalidDocument = errors.New("document failed validation")
	// ErrNoDocument reports an export attempt before any edit.
	ErrNoDocument = errors.New("no document to export")
)

// Phase is the round-trip state of the current snapshot.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseValidating
	PhaseValid
	PhaseInvalid
	PhasePreviewRendering
	PhasePreviewReady
)

// Previewer is the asynchronous preview transport. It may fail without
// consequence for the last-known-good preview.
type Previewer interface {
	Preview(ctx context.Context, doc *model.ResumeDocument) (string, error)
}

// Exporter produces the final artifact, revalidating server-side first.
type Exporter interface {
	ExportDocument(ctx context.Context, doc *model.ResumeDocument) ([]byte, validate.Result, error)
}

type Session struct {
	client    *validate.Client
	previewer Previewer
	exporter  Exporter
	debounce  time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	seq        uint64 // monotonic edit counter
	applied    uint64 // newest sequence whose preview was applied
	doc        *model.ResumeDocument
	result     validate.Result
	preview    string // last-known-good preview
	previewErr error  // transport error state, cleared by success or edit
	phase      Phase

	exporting bool
	pending   sync.WaitGroup
}

func New(client *validate.Client, previewer Previewer, exporter Exporter, debounce time.Duration) *Session {
	return &Session{
		client:    client,
		previewer: previewer,
		exporter:  exporter,
		debounce:  debounce,
	}
}

// Edit replaces the working snapshot and (re)arms the debounce timer.
// Rapid successive edits collapse into one evaluation of the newest
// snapshot: an edit arriving before the quiet period elapses cancels the
// older timer entirely.
func (s *Session) Edit(doc *model.ResumeDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.seq++
	s.phase = PhaseEditing
	s.previewErr = nil
	n := s.seq

	if s.timer != nil && s.timer.Stop() {
		s.pending.Done() // superseded before it fired
	}
	s.pending.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.pending.Done()
		s.evaluate(n, doc)
	})
}

// evaluate runs the inline client check and, when valid, requests a
// preview. Responses for superseded sequences are discarded on arrival;
// the transport is never assumed to support cancellation.
func (s *Session) evaluate(n uint64, doc *model.ResumeDocument) {
	s.mu.Lock()
	if n != s.seq {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseValidating
	s.mu.Unlock()

	res := s.client.Evaluate(doc)

	s.mu.Lock()
	if n != s.seq {
		s.mu.Unlock()
		return
	}
	s.result = res
	if !res.Valid {
		s.phase = PhaseInvalid
		s.mu.Unlock()
		return
	}
	s.phase = PhasePreviewRendering
	s.mu.Unlock()

	html, err := s.previewer.Preview(context.Background(), doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= s.applied {
		return // a newer preview already landed
	}
	if n != s.seq {
		return // snapshot superseded while the request was in flight
	}
	if err != nil {
		// keep the last-known-good preview, surface the failure
		s.previewErr = err
		s.phase = PhasePreviewReady
		return
	}
	s.applied = n
	s.preview = html
	s.previewErr = nil
	s.phase = PhasePreviewReady
}

// Export produces the artifact for the current snapshot. Concurrent calls
// are refused while one is outstanding; an edit racing the export makes
// the result stale and the export is refused rather than delivered, with
// a STALE_REVALIDATION_FAILURE violation in the returned result.
func (s *Session) Export(ctx context.Context) ([]byte, validate.Result, error) {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return nil, validate.Result{}, ErrExportInFlight
	}
	if s.doc == nil {
		s.mu.Unlock()
		return nil, validate.Result{}, ErrNoDocument
	}
	s.exporting = true
	doc := s.doc
	n := s.seq
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	pdf, res, err := s.exporter.ExportDocument(ctx, doc)
	if err != nil {
		return nil, validate.Result{}, err
	}
	if !res.Valid {
		s.mu.Lock()
		s.result = res
		s.phase = PhaseInvalid
		s.mu.Unlock()
		return nil, res, ErrInvalidDocument
	}

	s.mu.Lock()
	changed := n != s.seq
	s.mu.Unlock()
	if changed {
		stale := validate.Result{
			Valid: false,
			Errors: []validate.Violation{{
				Field:   "document",
				Kind:    validate.KindStaleRevalidation,
				Message: "Document changed during export; artifact discarded",
			}},
		}
		return nil, stale, ErrStaleSnapshot
	}
	return pdf, res, nil
}

// Preview returns the last-known-good preview and the transport error
// state, if any. A failed refresh never destroys prior valid content.
func (s *Session) Preview() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview, s.previewErr
}

// Validation returns the most recent inline evaluation result.
func (s *Session) Validation() validate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Phase returns the current round-trip state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Wait blocks until all armed or running evaluations have finished.
func (s *Session) Wait() {
	s.pending.Wait()
}
