package report

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
)

// ReportService builds reports from stored records. Totals always cover the whole
// period; Page and Limit only shape the listed rows.
type ReportService interface {
	ClientStatement(ctx context.Context, req StatementRequest) (ClientStatementReport, error)
	VehicleReport(ctx context.Context, req VehicleReportRequest) (VehicleReport, error)
	Paysheet(ctx context.Context, req PaysheetRequest) (PaysheetSummary, error)
	Payslip(ctx context.Context, req PayslipRequest) (PayslipSummary, error)

	ExportClientStatement(ctx context.Context, req StatementRequest, format export.Format) (export.File, error)
	ExportVehicleReport(ctx context.Context, req VehicleReportRequest, format export.Format) (export.File, error)
	ExportPaysheet(ctx context.Context, req PaysheetRequest, format export.Format) (export.File, error)
	ExportPayslip(ctx context.Context, req PayslipRequest, format export.Format) (export.File, error)
}
