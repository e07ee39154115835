package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func createClient(t *testing.T, setup *TestDatabaseSetup, name string) client.Client {
	c, err := postgresql.NewClientRepository(setup.DB).Create(context.Background(), client.Client{Name: name})
	require.NoError(t, err)
	return c
}

func createVehicle(t *testing.T, setup *TestDatabaseSetup, reg string, typ vehicle.Type) vehicle.Vehicle {
	v, err := postgresql.NewVehicleRepository(setup.DB).Create(context.Background(), vehicle.Vehicle{
		RegistrationNo: reg,
		Type:           typ,
		IsActive:       true,
	})
	require.NoError(t, err)
	return v
}

func createWorker(t *testing.T, setup *TestDatabaseSetup, name string) worker.Worker {
	rate := decimal.NewFromInt(800)
	w, err := postgresql.NewWorkerRepository(setup.DB).Create(context.Background(), worker.Worker{
		Name:       name,
		SalaryType: worker.SalaryTypeDaily,
		DailyRate:  &rate,
		IsActive:   true,
	})
	require.NoError(t, err)
	return w
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := repo.Create(ctx, user.User{
		Name:         "Admin",
		Email:        "admin@fleet.test",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(ctx, "ADMIN@fleet.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.Create(ctx, user.User{Name: "Dup", Email: "admin@fleet.test", PasswordHash: "x", Role: user.RoleOperator})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	require.NoError(t, repo.UpdateLastLogin(ctx, created.ID))
	found, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)
}

func TestClientRepository_NameUniqueAndInUse(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewClientRepository(setup.DB)

	c := createClient(t, setup, "Ravi Constructions")

	_, err := repo.Create(ctx, client.Client{Name: "ravi constructions"})
	assert.ErrorIs(t, err, client.ErrClientNameExists)

	v := createVehicle(t, setup, "KA 01 1234", vehicle.TypeJCB)
	_, err = postgresql.NewJobRepository(setup.DB).Create(ctx, job.Job{
		Type:        job.JobTypeJCB,
		VehicleID:   v.ID,
		ClientID:    c.ID,
		Date:        date("2024-03-01"),
		RateType:    job.RateTypeHourly,
		RateAmount:  decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(1000),
		Status:      job.StatusPending,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, c.ID), client.ErrClientInUse)
}

func TestJobRepository_FiltersAndJoins(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewJobRepository(setup.DB)

	c := createClient(t, setup, "Acme")
	v := createVehicle(t, setup, "KA 02 5678", vehicle.TypeLorry)
	w := createWorker(t, setup, "Suresh")

	trips := 3
	for _, d := range []string{"2024-03-01", "2024-03-15", "2024-04-02"} {
		_, err := repo.Create(ctx, job.Job{
			Type:        job.JobTypeLorry,
			VehicleID:   v.ID,
			ClientID:    c.ID,
			WorkerID:    &w.ID,
			Date:        date(d),
			RateType:    job.RateTypePerTrip,
			RateAmount:  decimal.NewFromInt(500),
			Trips:       &trips,
			TotalAmount: decimal.NewFromInt(1500),
			Status:      job.StatusPending,
		})
		require.NoError(t, err)
	}

	from, to := "2024-03-01", "2024-03-31"
	jobs, total, err := repo.List(ctx, job.JobFilter{ClientID: &c.ID, DateFrom: &from, DateTo: &to, Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", *jobs[0].ClientName)
	assert.Equal(t, "KA 02 5678", *jobs[0].VehicleRegistrationNo)
	assert.Equal(t, "Suresh", *jobs[0].WorkerName)

	all, err := repo.FindAll(ctx, job.JobFilter{VehicleID: &v.ID, SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-01", all[0].Date.Format("2006-01-02"))

	require.NoError(t, repo.UpdateStatus(ctx, all[0].ID, job.StatusCompleted))
	got, err := repo.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusCompleted, got.Status)

	linked, err := repo.HasPayments(ctx, got.ID)
	require.NoError(t, err)
	assert.False(t, linked)
}

func TestPaymentRepository_PayableRoundTrip(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()

	c := createClient(t, setup, "Acme")
	v := createVehicle(t, setup, "KA 03 0001", vehicle.TypeJCB)
	j, err := postgresql.NewJobRepository(setup.DB).Create(ctx, job.Job{
		Type:        job.JobTypeJCB,
		VehicleID:   v.ID,
		ClientID:    c.ID,
		Date:        date("2024-03-01"),
		RateType:    job.RateTypeDaily,
		RateAmount:  decimal.NewFromInt(4000),
		TotalAmount: decimal.NewFromInt(4000),
		Status:      job.StatusCompleted,
	})
	require.NoError(t, err)

	repo := postgresql.NewPaymentRepository(setup.DB)
	linked, err := repo.Create(ctx, payment.Payment{
		ClientID: c.ID,
		Amount:   decimal.NewFromInt(2500),
		Date:     date("2024-03-05"),
		Method:   payment.MethodUPI,
		Payable:  &payment.PayableRef{Kind: payment.PayableKindJob, ID: j.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, linked.Payable)
	assert.Equal(t, j.ID, linked.Payable.ID)

	onAccount, err := repo.Create(ctx, payment.Payment{
		ClientID: c.ID,
		Amount:   decimal.NewFromInt(100),
		Date:     date("2024-03-06"),
		Method:   payment.MethodCash,
	})
	require.NoError(t, err)
	assert.Nil(t, onAccount.Payable)

	byJob, err := repo.FindAll(ctx, payment.PaymentFilter{JobID: &j.ID})
	require.NoError(t, err)
	require.Len(t, byJob, 1)
	assert.Equal(t, linked.ID, byJob[0].ID)

	jobRepo := postgresql.NewJobRepository(setup.DB)
	linkedJob, err := jobRepo.HasPayments(ctx, j.ID)
	require.NoError(t, err)
	assert.True(t, linkedJob)

	assert.ErrorIs(t, jobRepo.Delete(ctx, j.ID), job.ErrJobInUse)
}

func TestAttendanceRepository_CreateConflictsUpsertReplaces(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	w := createWorker(t, setup, "Ramesh")

	first, err := repo.Create(ctx, attendance.WorkerAttendance{WorkerID: w.ID, Date: date("2024-03-04"), Status: attendance.StatusPresent})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.WorkerAttendance{WorkerID: w.ID, Date: date("2024-03-04"), Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyRecorded)

	replaced, err := repo.Upsert(ctx, attendance.WorkerAttendance{WorkerID: w.ID, Date: date("2024-03-04"), Status: attendance.StatusHalfDay})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replaced.ID)
	assert.Equal(t, attendance.StatusHalfDay, replaced.Status)
	assert.Equal(t, "Ramesh", *replaced.WorkerName)

	records, err := repo.FindByWorkerAndRange(ctx, w.ID, date("2024-03-01"), date("2024-03-31"))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestBillRepository_CreateUpdateReplacesItems(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewBillRepository(setup.DB)

	c := createClient(t, setup, "Acme")
	v := createVehicle(t, setup, "KA 04 4321", vehicle.TypeJCB)

	start, end := decimal.NewFromInt(100), decimal.NewFromInt(108)
	b := bill.MonthlyVehicleBill{
		VehicleID:     v.ID,
		ClientID:      c.ID,
		Month:         3,
		Year:          2024,
		Rate:          decimal.NewFromInt(1000),
		TotalHoursSum: decimal.NewFromInt(8),
		TotalAmount:   decimal.NewFromInt(8000),
		Items: []bill.BillItem{
			{ItemDate: date("2024-03-01"), StartMeter: &start, EndMeter: &end, TotalHours: decimal.NewFromInt(8), Rate: decimal.NewFromInt(1000), Amount: decimal.NewFromInt(8000)},
		},
	}

	var created bill.MonthlyVehicleBill
	err := postgresql.NewTransactor(setup.DB).WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = repo.Create(txCtx, b)
		return err
	})
	require.NoError(t, err)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "KA 04 4321", *created.VehicleRegistrationNo)

	_, err = repo.Create(ctx, b)
	assert.ErrorIs(t, err, bill.ErrBillAlreadyExists)

	created.Items = []bill.BillItem{
		{ItemDate: date("2024-03-02"), TotalHours: decimal.NewFromInt(5), Rate: decimal.NewFromInt(1000), Amount: decimal.NewFromInt(5000), IsManual: true},
		{ItemDate: date("2024-03-03"), TotalHours: decimal.NewFromInt(4), Rate: decimal.NewFromInt(1000), Amount: decimal.NewFromInt(4000), IsManual: true},
	}
	err = postgresql.NewTransactor(setup.DB).WithinTransaction(ctx, func(txCtx context.Context) error {
		return repo.Update(txCtx, created)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "2024-03-02", got.Items[0].ItemDate.Format("2006-01-02"))

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, bill.ErrBillNotFound)
}

func TestDashboardRepository_GetCounts(t *testing.T) {
	setup := requireDB(t)
	ctx := context.Background()

	createClient(t, setup, "Acme")
	createClient(t, setup, "Beta")
	createVehicle(t, setup, "KA 05 0001", vehicle.TypeJCB)
	createWorker(t, setup, "Ramesh")

	counts, err := postgresql.NewDashboardRepository(setup.DB).GetCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.ActiveVehicles)
	assert.Equal(t, int64(1), counts.ActiveWorkers)
	assert.Equal(t, int64(2), counts.Clients)
}
