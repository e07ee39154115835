package billing

import (
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob(clientID, vehicleID string, jobType job.JobType, date, amount string) job.Job {
	return job.Job{ClientID: clientID, VehicleID: vehicleID, Type: jobType, Date: day(date), TotalAmount: dec(amount)}
}

func statementFixture() ([]job.Job, []payment.Payment) {
	jobs := []job.Job{
		testJob("c1", "v1", job.JobTypeJCB, "2024-03-02", "6000"),
		testJob("c1", "v1", job.JobTypeJCB, "2024-03-10", "4000"),
		testJob("c1", "v2", job.JobTypeLorry, "2024-03-15", "5000"),
		testJob("c1", "v2", job.JobTypeLorry, "2024-04-01", "9999"), // outside
		testJob("c2", "v2", job.JobTypeLorry, "2024-03-15", "8888"), // other client
	}
	payments := []payment.Payment{
		{ClientID: "c1", Date: day("2024-03-05"), Amount: dec("7000")},
		{ClientID: "c1", Date: day("2024-03-31"), Amount: dec("5000")},
		{ClientID: "c1", Date: day("2024-02-28"), Amount: dec("1111")}, // outside
		{ClientID: "c2", Date: day("2024-03-05"), Amount: dec("2222")},
	}
	return jobs, payments
}

func TestBuildClientStatement(t *testing.T) {
	jobs, payments := statementFixture()

	got := BuildClientStatement("c1", day("2024-03-01"), day("2024-03-31"), jobs, payments)

	assert.Equal(t, "10000", got.TotalJcb.String())
	assert.Equal(t, "5000", got.TotalLorry.String())
	assert.Equal(t, "15000", got.TotalJobsAmount.String())
	assert.Equal(t, "12000", got.TotalPayments.String())
	assert.Equal(t, "3000", got.OutstandingBalance.String())
	assert.Equal(t, 3, got.JobCount)
	assert.Equal(t, 2, got.PaymentCount)
	assert.Equal(t, "2024-03-01", got.DateFrom)
}

func TestBuildClientStatement_CreditBalance(t *testing.T) {
	jobs := []job.Job{testJob("c1", "v1", job.JobTypeJCB, "2024-03-02", "1000")}
	payments := []payment.Payment{{ClientID: "c1", Date: day("2024-03-03"), Amount: dec("1500.50")}}

	got := BuildClientStatement("c1", day("2024-03-01"), day("2024-03-31"), jobs, payments)
	assert.Equal(t, "-500.5", got.OutstandingBalance.String())
}

func TestBuildClientStatement_Idempotent(t *testing.T) {
	jobs, payments := statementFixture()
	from, to := day("2024-03-01"), day("2024-03-31")

	first := BuildClientStatement("c1", from, to, jobs, payments)
	second := BuildClientStatement("c1", from, to, jobs, payments)
	assert.Equal(t, first, second)
}

func TestBuildVehicleReport(t *testing.T) {
	jobs := []job.Job{
		testJob("c1", "v1", job.JobTypeJCB, "2024-03-02", "6000"),
		testJob("c2", "v1", job.JobTypeLorry, "2024-03-09", "2500.25"),
		testJob("c1", "v2", job.JobTypeJCB, "2024-03-02", "999"),
	}
	expenses := []expense.VehicleExpense{
		{VehicleID: "v1", Category: "fuel", Amount: dec("1200"), Date: day("2024-03-03")},
		{VehicleID: "v1", Category: "fuel", Amount: dec("800"), Date: day("2024-03-20")},
		{VehicleID: "v1", Category: "repair", Amount: dec("1500"), Date: day("2024-03-11")},
		{VehicleID: "v1", Category: "insurance", Amount: dec("3000"), Date: day("2024-02-25"), DateTo: timePtr(day("2024-03-25"))},
		{VehicleID: "v2", Category: "fuel", Amount: dec("700"), Date: day("2024-03-03")},
	}

	got := BuildVehicleReport("v1", day("2024-03-01"), day("2024-03-31"), jobs, expenses)

	assert.Equal(t, "6000", got.TotalJcbRevenue.String())
	assert.Equal(t, "2500.25", got.TotalLorryRevenue.String())
	assert.Equal(t, "8500.25", got.TotalRevenue.String())
	require.Len(t, got.ExpensesByCategory, 2)
	assert.Equal(t, "fuel", got.ExpensesByCategory[0].Category)
	assert.Equal(t, "2000", got.ExpensesByCategory[0].Amount.String())
	assert.Equal(t, "repair", got.ExpensesByCategory[1].Category)
	assert.Equal(t, "3500", got.TotalExpenses.String())
	assert.Equal(t, "5000.25", got.NetIncome.String())
}

func TestBuildVehicleReport_Empty(t *testing.T) {
	got := BuildVehicleReport("v1", day("2024-03-01"), day("2024-03-31"), nil, nil)
	assert.NotNil(t, got.ExpensesByCategory)
	assert.Empty(t, got.ExpensesByCategory)
	assert.True(t, got.NetIncome.IsZero())
}
