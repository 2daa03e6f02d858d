package printing

import (
	"context"
	"strings"

	reportapp "github.com/cajachica/backend/internal/application/report"
	"github.com/cajachica/backend/internal/domain/report"
	"github.com/cajachica/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Ensure ReportSpooler implements the workflow's spooler contract
var _ reportapp.Spooler = (*ReportSpooler)(nil)

// ReportSpooler produces the printable PDF for a report view and archives it.
// It is the output side of the print step: the workflow only advances to
// confirmation once the document landed in the archive.
type ReportSpooler struct {
	renderer PDFRenderer
	store    storage.ArchiveStore
	logger   *zap.Logger
}

// NewReportSpooler creates a ReportSpooler
func NewReportSpooler(renderer PDFRenderer, store storage.ArchiveStore, logger *zap.Logger) *ReportSpooler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportSpooler{renderer: renderer, store: store, logger: logger}
}

// Spool renders the view to PDF and stores it under the report label,
// returning the archive URL
func (s *ReportSpooler) Spool(ctx context.Context, view report.ReportView) (string, error) {
	html, err := RenderDocument(view)
	if err != nil {
		return "", err
	}

	result, err := s.renderer.Render(ctx, &RenderRequest{
		HTML:  html,
		Title: view.Label,
	})
	if err != nil {
		return "", err
	}

	key := archiveKey(view.Label)
	url, err := s.store.Store(ctx, key, result.PDFData, "application/pdf")
	if err != nil {
		return "", err
	}

	s.logger.Info("Report document spooled",
		zap.String("label", view.Label),
		zap.String("key", key),
		zap.Duration("render_duration", result.RenderDuration))

	return url, nil
}

// archiveKey derives a safe storage key from the report label
func archiveKey(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String() + ".pdf"
}

// HTMLSpooler archives the rendered HTML document without converting it to
// PDF. It backs deployments that run without a browser engine.
type HTMLSpooler struct {
	store  storage.ArchiveStore
	logger *zap.Logger
}

var _ reportapp.Spooler = (*HTMLSpooler)(nil)

// NewHTMLSpooler creates an HTMLSpooler
func NewHTMLSpooler(store storage.ArchiveStore, logger *zap.Logger) *HTMLSpooler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLSpooler{store: store, logger: logger}
}

// Spool renders the view to HTML and stores it under the report label
func (s *HTMLSpooler) Spool(ctx context.Context, view report.ReportView) (string, error) {
	html, err := RenderDocument(view)
	if err != nil {
		return "", err
	}

	key := strings.TrimSuffix(archiveKey(view.Label), ".pdf") + ".html"
	url, err := s.store.Store(ctx, key, []byte(html), "text/html; charset=utf-8")
	if err != nil {
		return "", err
	}

	s.logger.Info("Report document spooled as HTML",
		zap.String("label", view.Label),
		zap.String("key", key))

	return url, nil
}
