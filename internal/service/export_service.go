package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
	"github.com/binaryhub/portal-api/pkg/export"
)

type enrollmentSource interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered export ready to be sent to the client.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders enrollment listings as CSV or PDF files.
type ExportService struct {
	enrollments enrollmentSource
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService instance.
func NewExportService(enrollments enrollmentSource, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{enrollments: enrollments, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ExportEnrollments renders the filtered enrollment list in the
// requested format (csv or pdf).
func (s *ExportService) ExportEnrollments(ctx context.Context, filter models.EnrollmentFilter, format string) (*ExportResult, error) {
	enrollments, err := s.enrollments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := buildEnrollmentDataset(enrollments)
	stamp := s.now().UTC().Format("2006-01-02")

	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("enrollments-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("enrollments-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid format. Must be csv or pdf")
	}
}

func buildEnrollmentDataset(enrollments []models.Enrollment) export.Dataset {
	headers := []string{"Course", "Student", "Email", "Payment Method", "Status", "Purchase Date", "Expiration Date", "Expired"}
	rows := make([]map[string]string, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		rows = append(rows, map[string]string{
			"Course":          e.Course.Title,
			"Student":         e.User.FullName,
			"Email":           e.User.Email,
			"Payment Method":  string(e.Payment.Method),
			"Status":          string(e.Status),
			"Purchase Date":   formatDate(e.PurchaseDate),
			"Expiration Date": formatDate(e.ExpirationDate),
			"Expired":         fmt.Sprintf("%t", e.Expired),
		})
	}
	return export.Dataset{Title: "Enrollments", Headers: headers, Rows: rows}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
