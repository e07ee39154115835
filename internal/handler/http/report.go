package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

// ReportHandler serves every report as JSON by default, or as a download when
// ?format=pdf or ?format=xlsx is given.
type ReportHandler interface {
	ClientStatement(w http.ResponseWriter, r *http.Request)
	VehicleReport(w http.ResponseWriter, r *http.Request)
	Paysheet(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) ClientStatement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.StatementRequest{
		ClientID: chi.URLParam(r, "id"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}
	req.Page, req.Limit = pagination(r)

	respondReport(w, r,
		func(ctx context.Context) (any, error) { return h.reportService.ClientStatement(ctx, req) },
		func(ctx context.Context, f export.Format) (export.File, error) {
			return h.reportService.ExportClientStatement(ctx, req, f)
		},
	)
}

func (h *reportHandlerImpl) VehicleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.VehicleReportRequest{
		VehicleID: chi.URLParam(r, "id"),
		DateFrom:  q.Get("date_from"),
		DateTo:    q.Get("date_to"),
	}
	req.Page, req.Limit = pagination(r)

	respondReport(w, r,
		func(ctx context.Context) (any, error) { return h.reportService.VehicleReport(ctx, req) },
		func(ctx context.Context, f export.Format) (export.File, error) {
			return h.reportService.ExportVehicleReport(ctx, req, f)
		},
	)
}

func (h *reportHandlerImpl) Paysheet(w http.ResponseWriter, r *http.Request) {
	month, ok := queryInt(r, "month")
	if !ok {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	var req report.PaysheetRequest
	if month != nil {
		req.Month = *month
	}
	if year != nil {
		req.Year = *year
	}

	respondReport(w, r,
		func(ctx context.Context) (any, error) { return h.reportService.Paysheet(ctx, req) },
		func(ctx context.Context, f export.Format) (export.File, error) {
			return h.reportService.ExportPaysheet(ctx, req, f)
		},
	)
}

func (h *reportHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.PayslipRequest{
		WorkerID:   chi.URLParam(r, "id"),
		PeriodFrom: q.Get("period_from"),
		PeriodTo:   q.Get("period_to"),
	}

	respondReport(w, r,
		func(ctx context.Context) (any, error) { return h.reportService.Payslip(ctx, req) },
		func(ctx context.Context, f export.Format) (export.File, error) {
			return h.reportService.ExportPayslip(ctx, req, f)
		},
	)
}

func respondReport(
	w http.ResponseWriter,
	r *http.Request,
	build func(ctx context.Context) (any, error),
	render func(ctx context.Context, format export.Format) (export.File, error),
) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if format == export.FormatJSON {
		result, err := build(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	file, err := render(r.Context(), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, file)
}
