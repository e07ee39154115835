package bill

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeBillRepo struct {
	bills map[string]bill.MonthlyVehicleBill
}

func (f *fakeBillRepo) Create(_ context.Context, b bill.MonthlyVehicleBill) (bill.MonthlyVehicleBill, error) {
	for _, existing := range f.bills {
		if existing.VehicleID == b.VehicleID && existing.ClientID == b.ClientID &&
			existing.Month == b.Month && existing.Year == b.Year {
			return bill.MonthlyVehicleBill{}, bill.ErrBillAlreadyExists
		}
	}
	b.ID = uuid.NewString()
	reg := "KA 01 1234"
	b.VehicleRegistrationNo = &reg
	f.bills[b.ID] = b
	return b, nil
}

func (f *fakeBillRepo) GetByID(_ context.Context, id string) (bill.MonthlyVehicleBill, error) {
	b, ok := f.bills[id]
	if !ok {
		return bill.MonthlyVehicleBill{}, bill.ErrBillNotFound
	}
	return b, nil
}

func (f *fakeBillRepo) List(_ context.Context, _ bill.BillFilter) ([]bill.MonthlyVehicleBill, int64, error) {
	var out []bill.MonthlyVehicleBill
	for _, b := range f.bills {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBillRepo) Update(_ context.Context, b bill.MonthlyVehicleBill) error {
	if _, ok := f.bills[b.ID]; !ok {
		return bill.ErrBillNotFound
	}
	f.bills[b.ID] = b
	return nil
}

func (f *fakeBillRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bills[id]; !ok {
		return bill.ErrBillNotFound
	}
	delete(f.bills, id)
	return nil
}

type stubVehicles struct{ vehicle.VehicleRepository }

func (stubVehicles) GetByID(_ context.Context, id string) (vehicle.Vehicle, error) {
	if id != "v1" {
		return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
	}
	return vehicle.Vehicle{ID: id, Type: vehicle.TypeJCB}, nil
}

type stubClients struct{ client.ClientRepository }

func (stubClients) GetByID(_ context.Context, id string) (client.Client, error) {
	if id != "c1" {
		return client.Client{}, client.ErrClientNotFound
	}
	return client.Client{ID: id}, nil
}

type stubJobs struct {
	job.JobRepository
	jobs   []job.Job
	filter job.JobFilter
}

func (s *stubJobs) FindAll(_ context.Context, filter job.JobFilter) ([]job.Job, error) {
	s.filter = filter
	return s.jobs, nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleRequest() bill.BillRequest {
	return bill.BillRequest{
		VehicleID:    "v1",
		ClientID:     "c1",
		Month:        3,
		Year:         2024,
		Rate:         decimal.NewFromInt(100),
		OvertimeRate: decimal.NewFromInt(10),
		OvertimeKms:  decimal.NewFromInt(5),
		Items: []bill.BillItemRequest{
			{ItemDate: "2024-03-01", StartMeter: dec("100"), EndMeter: dec("108")},
			{ItemDate: "2024-03-02", TotalHours: dec("4"), IsManual: true},
		},
	}
}

func newBillService() (*BillServiceImpl, *fakeBillRepo, *stubJobs) {
	repo := &fakeBillRepo{bills: map[string]bill.MonthlyVehicleBill{}}
	jobs := &stubJobs{}
	svc := NewBillService(fakeTx{}, repo, stubVehicles{}, stubClients{}, jobs, "Acme Earthmovers").(*BillServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, jobs
}

func TestCreate_BuildsTotals(t *testing.T) {
	svc, _, _ := newBillService()

	got, err := svc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(12).Equal(got.TotalHoursSum), "hours %s", got.TotalHoursSum)
	assert.True(t, decimal.NewFromInt(50).Equal(got.OvertimeAmount))
	assert.True(t, decimal.NewFromInt(1250).Equal(got.TotalAmount), "total %s", got.TotalAmount)
	require.Len(t, got.Items, 2)
	assert.True(t, decimal.NewFromInt(800).Equal(got.Items[0].Amount))
}

func TestCreate_OvertimeOnly(t *testing.T) {
	svc, _, _ := newBillService()
	req := sampleRequest()
	req.Items = nil

	require.NoError(t, req.Validate())
	got, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, got.Items)
	assert.True(t, decimal.Zero.Equal(got.TotalHoursSum))
	assert.True(t, decimal.NewFromInt(50).Equal(got.OvertimeAmount))
	assert.True(t, decimal.NewFromInt(50).Equal(got.TotalAmount), "total %s", got.TotalAmount)
}

func TestCreate_DuplicateMonth(t *testing.T) {
	svc, _, _ := newBillService()
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleRequest())
	assert.ErrorIs(t, err, bill.ErrBillAlreadyExists)
}

func TestCreate_UnknownReferences(t *testing.T) {
	svc, _, _ := newBillService()
	ctx := context.Background()

	req := sampleRequest()
	req.VehicleID = "v404"
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, vehicle.ErrVehicleNotFound)

	req = sampleRequest()
	req.ClientID = "c404"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestUpdate_ReplacesItems(t *testing.T) {
	svc, repo, _ := newBillService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	req := sampleRequest()
	req.Items = req.Items[:1]
	req.OvertimeKms = decimal.Zero
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, updated.Items, 1)
	assert.True(t, decimal.NewFromInt(800).Equal(updated.TotalAmount))
	assert.Len(t, repo.bills, 1)

	_, err = svc.Update(ctx, "missing", sampleRequest())
	assert.ErrorIs(t, err, bill.ErrBillNotFound)
}

func TestExport(t *testing.T) {
	svc, _, _ := newBillService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	pdf, err := svc.Export(ctx, created.ID, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "bill-KA-01-1234-2024-03.pdf", pdf.Name)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF-")))

	xlsx, err := svc.Export(ctx, created.ID, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "bill-KA-01-1234-2024-03.xlsx", xlsx.Name)
	assert.NotEmpty(t, xlsx.Data)

	_, err = svc.Export(ctx, "missing", export.FormatPDF)
	assert.ErrorIs(t, err, bill.ErrBillNotFound)
}

func TestPrefill_OneManualItemPerJob(t *testing.T) {
	svc, _, jobs := newBillService()
	notes := "site A"
	jobs.jobs = []job.Job{
		{ID: "j2", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), TotalHours: dec("6.5")},
		{ID: "j1", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), TotalHours: dec("8"), Notes: &notes},
		{ID: "j3", Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
	}

	got, err := svc.Prefill(context.Background(), bill.PrefillRequest{VehicleID: "v1", ClientID: "c1", Month: 3, Year: 2024})
	require.NoError(t, err)

	require.Len(t, got.Items, 3)
	assert.Equal(t, "2024-03-02", got.Items[0].ItemDate)
	assert.True(t, got.Items[0].IsManual)
	assert.True(t, got.Items[0].StartMeter.IsZero())
	assert.True(t, decimal.NewFromInt(8).Equal(*got.Items[0].EndMeter))
	assert.True(t, decimal.NewFromInt(8).Equal(*got.Items[0].TotalHours))
	assert.Equal(t, &notes, got.Items[0].Remarks)
	assert.True(t, got.Items[2].TotalHours.IsZero())

	require.NotNil(t, jobs.filter.Type)
	assert.Equal(t, "jcb", *jobs.filter.Type)
	assert.Equal(t, "2024-03-01", *jobs.filter.DateFrom)
	assert.Equal(t, "2024-03-31", *jobs.filter.DateTo)

	// The proposal is a valid bill request once a rate is chosen.
	req := bill.BillRequest{VehicleID: "v1", ClientID: "c1", Month: 3, Year: 2024, Rate: decimal.NewFromInt(100), Items: got.Items}
	assert.NoError(t, req.Validate())
}
