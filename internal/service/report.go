package service

import (
	"context"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/export"
)

// ReportService defines the interface for session report exports
type ReportService interface {
	ExportReport(ctx context.Context, sessionID, format, candidate string) (*export.Document, error)
}

type reportService struct {
	manager  SessionManager
	catalog  Catalog
	exporter *export.Exporter
}

// NewReportService creates a new instance of reportService
func NewReportService(manager SessionManager, catalog Catalog, exporter *export.Exporter) ReportService {
	return &reportService{manager: manager, catalog: catalog, exporter: exporter}
}

func (s *reportService) ExportReport(ctx context.Context, sessionID, format, candidate string) (*export.Document, error) {
	f, ok := export.ParseFormat(format)
	if !ok {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("format", format)}
	}
	st, _, err := s.manager.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, st.Snapshot(), s.catalog, f, candidate)
}
