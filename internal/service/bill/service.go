package bill

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/billing"
	"github.com/shopspring/decimal"
)

type BillServiceImpl struct {
	tx database.Transactor
	bill.BillRepository
	vehicleRepo vehicle.VehicleRepository
	clientRepo  client.ClientRepository
	jobRepo     job.JobRepository
	companyName string
	now         func() time.Time
}

func NewBillService(
	tx database.Transactor,
	billRepository bill.BillRepository,
	vehicleRepo vehicle.VehicleRepository,
	clientRepo client.ClientRepository,
	jobRepo job.JobRepository,
	companyName string,
) bill.BillService {
	return &BillServiceImpl{
		tx:             tx,
		BillRepository: billRepository,
		vehicleRepo:    vehicleRepo,
		clientRepo:     clientRepo,
		jobRepo:        jobRepo,
		companyName:    companyName,
		now:            time.Now,
	}
}

// Create implements bill.BillService.
func (s *BillServiceImpl) Create(ctx context.Context, req bill.BillRequest) (bill.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.BillResponse{}, err
	}
	if err := s.checkReferences(ctx, req.VehicleID, req.ClientID); err != nil {
		return bill.BillResponse{}, err
	}

	built := billing.BuildMonthlyBill(req.ToInput())

	var created bill.MonthlyVehicleBill
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.BillRepository.Create(txCtx, built)
		return err
	})
	if err != nil {
		return bill.BillResponse{}, fmt.Errorf("failed to create bill: %w", err)
	}

	slog.Info("monthly bill created",
		"bill_id", created.ID,
		"vehicle_id", created.VehicleID,
		"client_id", created.ClientID,
		"month", created.Month,
		"year", created.Year,
		"total_amount", created.TotalAmount.String(),
	)
	return s.Get(ctx, created.ID)
}

// Get implements bill.BillService.
func (s *BillServiceImpl) Get(ctx context.Context, id string) (bill.BillResponse, error) {
	b, err := s.BillRepository.GetByID(ctx, id)
	if err != nil {
		return bill.BillResponse{}, err
	}
	return bill.NewBillResponse(b), nil
}

// List implements bill.BillService. Items are not loaded for list rows.
func (s *BillServiceImpl) List(ctx context.Context, filter bill.BillFilter) (bill.ListBillResponse, error) {
	if filter.Month != nil && !validator.IsValidMonth(*filter.Month) {
		var errs validator.ValidationErrors
		errs.Add("month", "month must be between 1 and 12")
		return bill.ListBillResponse{}, errs
	}

	bills, total, err := s.BillRepository.List(ctx, filter)
	if err != nil {
		return bill.ListBillResponse{}, fmt.Errorf("failed to list bills: %w", err)
	}

	responses := make([]bill.BillResponse, 0, len(bills))
	for _, b := range bills {
		responses = append(responses, bill.NewBillResponse(b))
	}

	return bill.ListBillResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements bill.BillService. The bill is rebuilt from the request and all
// items are replaced.
func (s *BillServiceImpl) Update(ctx context.Context, id string, req bill.BillRequest) (bill.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.BillResponse{}, err
	}
	if err := s.checkReferences(ctx, req.VehicleID, req.ClientID); err != nil {
		return bill.BillResponse{}, err
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.BillRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		rebuilt := billing.BuildMonthlyBill(req.ToInput())
		rebuilt.ID = existing.ID
		rebuilt.CreatedAt = existing.CreatedAt
		return s.BillRepository.Update(txCtx, rebuilt)
	})
	if err != nil {
		return bill.BillResponse{}, err
	}
	return s.Get(ctx, id)
}

// Delete implements bill.BillService.
func (s *BillServiceImpl) Delete(ctx context.Context, id string) error {
	return s.BillRepository.Delete(ctx, id)
}

// Export implements bill.BillService.
func (s *BillServiceImpl) Export(ctx context.Context, id string, format export.Format) (export.File, error) {
	b, err := s.BillRepository.GetByID(ctx, id)
	if err != nil {
		return export.File{}, err
	}

	rows := make([][]string, 0, len(b.Items))
	for _, item := range b.Items {
		rows = append(rows, []string{
			item.ItemDate.Format(validator.DateLayout),
			export.MoneyPtr(item.StartMeter),
			export.MoneyPtr(item.EndMeter),
			export.Money(item.TotalHours),
			export.Money(item.Rate),
			export.Money(item.Amount),
			export.Text(item.Remarks),
		})
	}

	period := fmt.Sprintf("%02d/%d", b.Month, b.Year)
	doc := export.Document{
		Company: s.companyName,
		Title:   "Monthly Bill " + period,
		Meta: []export.Field{
			{Label: "Vehicle", Value: export.Text(b.VehicleRegistrationNo)},
			{Label: "Client", Value: export.Text(b.ClientName)},
			{Label: "Period", Value: period},
			{Label: "Rate", Value: export.Money(b.Rate)},
			{Label: "Per day km", Value: export.Money(b.PerDayKm)},
		},
		Tables: []export.Table{{
			Title: "Items",
			Columns: []export.Column{
				{Header: "Date", Width: 2},
				{Header: "Start meter", Width: 1.5, Numeric: true},
				{Header: "End meter", Width: 1.5, Numeric: true},
				{Header: "Hours", Width: 1, Numeric: true},
				{Header: "Rate", Width: 1, Numeric: true},
				{Header: "Amount", Width: 1.5, Numeric: true},
				{Header: "Remarks", Width: 2.5},
			},
			Rows:   rows,
			Footer: []string{"Total", "", "", export.Money(b.TotalHoursSum), "", export.Money(b.TotalAmount.Sub(b.OvertimeAmount)), ""},
		}},
		Totals: []export.Field{
			{Label: "Overtime km", Value: export.Money(b.OvertimeKms)},
			{Label: "Overtime rate", Value: export.Money(b.OvertimeRate)},
			{Label: "Overtime amount", Value: export.Money(b.OvertimeAmount)},
			{Label: "Total amount", Value: export.Money(b.TotalAmount)},
		},
		GeneratedAt: s.now(),
	}

	name := fmt.Sprintf("bill-%s-%d-%02d", exportName(b.VehicleRegistrationNo, b.VehicleID), b.Year, b.Month)
	return export.Render(doc, format, name)
}

// Prefill implements bill.BillService. Every jcb job the vehicle did for the client
// in the month becomes one manual item carrying the job's hours.
func (s *BillServiceImpl) Prefill(ctx context.Context, req bill.PrefillRequest) (bill.PrefillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.PrefillResponse{}, err
	}
	if err := s.checkReferences(ctx, req.VehicleID, req.ClientID); err != nil {
		return bill.PrefillResponse{}, err
	}

	from, to := validator.MonthRange(req.Month, req.Year)
	jobType := string(job.JobTypeJCB)
	dateFrom, dateTo := from.Format(validator.DateLayout), to.Format(validator.DateLayout)
	jobs, err := s.jobRepo.FindAll(ctx, job.JobFilter{
		Type:      &jobType,
		VehicleID: &req.VehicleID,
		ClientID:  &req.ClientID,
		DateFrom:  &dateFrom,
		DateTo:    &dateTo,
	})
	if err != nil {
		return bill.PrefillResponse{}, fmt.Errorf("failed to load jobs: %w", err)
	}
	sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].Date.Before(jobs[k].Date) })

	items := make([]bill.BillItemRequest, 0, len(jobs))
	for _, j := range jobs {
		hours := decimal.Zero
		if j.TotalHours != nil {
			hours = *j.TotalHours
		}
		start, end := decimal.Zero, hours
		items = append(items, bill.BillItemRequest{
			ItemDate:   j.Date.Format(validator.DateLayout),
			StartMeter: &start,
			EndMeter:   &end,
			TotalHours: &hours,
			IsManual:   true,
			Remarks:    j.Notes,
		})
	}

	return bill.PrefillResponse{
		VehicleID: req.VehicleID,
		ClientID:  req.ClientID,
		Month:     req.Month,
		Year:      req.Year,
		Items:     items,
	}, nil
}

func (s *BillServiceImpl) checkReferences(ctx context.Context, vehicleID, clientID string) error {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return err
	}
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return err
	}
	return nil
}

func exportName(preferred *string, fallback string) string {
	if preferred != nil && *preferred != "" {
		return strings.ReplaceAll(*preferred, " ", "-")
	}
	return fallback
}
