package billing

import (
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meterItem(date, start, end string) bill.ItemInput {
	return bill.ItemInput{ItemDate: day(date), StartMeter: decPtr(start), EndMeter: decPtr(end)}
}

func TestBuildMonthlyBill(t *testing.T) {
	in := bill.BillInput{
		VehicleID:    "v1",
		ClientID:     "c1",
		Month:        3,
		Year:         2024,
		Rate:         dec("100"),
		PerDayKm:     dec("80"),
		OvertimeRate: dec("5"),
		OvertimeKms:  dec("10"),
		Items: []bill.ItemInput{
			meterItem("2024-03-01", "1000", "1008"),
			meterItem("2024-03-02", "1008", "1016"),
			{ItemDate: day("2024-03-03"), Hours: decPtr("8"), IsManual: true},
		},
	}

	got := BuildMonthlyBill(in)

	require.Len(t, got.Items, 3)
	itemsSum := dec("0")
	for _, it := range got.Items {
		assert.Equal(t, "8", it.TotalHours.String())
		itemsSum = itemsSum.Add(it.Amount)
	}
	assert.Equal(t, "24", got.TotalHoursSum.String())
	assert.Equal(t, "2400", itemsSum.String())
	assert.Equal(t, "50", got.OvertimeAmount.String())
	assert.Equal(t, "2450", got.TotalAmount.String())
	assert.Equal(t, "80", got.PerDayKm.String())
	assert.Equal(t, "v1", got.VehicleID)
	assert.Equal(t, 3, got.Month)
}

func TestBuildMonthlyBill_NoItems(t *testing.T) {
	got := BuildMonthlyBill(bill.BillInput{
		VehicleID:    "v1",
		ClientID:     "c1",
		Month:        3,
		Year:         2024,
		Rate:         dec("100"),
		OvertimeRate: dec("5"),
		OvertimeKms:  dec("10"),
	})

	assert.Empty(t, got.Items)
	assert.Equal(t, "0", got.TotalHoursSum.String())
	assert.Equal(t, "50", got.OvertimeAmount.String())
	assert.Equal(t, "50", got.TotalAmount.String())
}

func TestBuildMonthlyBill_Overrides(t *testing.T) {
	in := bill.BillInput{
		Rate: dec("100"),
		Items: []bill.ItemInput{
			{ItemDate: day("2024-03-01"), StartMeter: decPtr("10"), EndMeter: decPtr("15.5"), Rate: decPtr("120")},
			{ItemDate: day("2024-03-02"), Hours: decPtr("6"), IsManual: true, Amount: decPtr("750")},
			{ItemDate: day("2024-03-03"), Hours: decPtr("2"), IsManual: true, Rate: decPtr("90")},
			// Meters on a manual item are informational only.
			{ItemDate: day("2024-03-04"), StartMeter: decPtr("0"), EndMeter: decPtr("99"), Hours: decPtr("1"), IsManual: true},
		},
	}

	got := BuildMonthlyBill(in)

	require.Len(t, got.Items, 4)
	assert.Equal(t, "5.5", got.Items[0].TotalHours.String())
	assert.Equal(t, "660", got.Items[0].Amount.String())
	assert.Equal(t, "120", got.Items[0].Rate.String())
	assert.Equal(t, "750", got.Items[1].Amount.String())
	assert.Equal(t, "180", got.Items[2].Amount.String())
	assert.Equal(t, "1", got.Items[3].TotalHours.String())
	assert.Equal(t, "100", got.Items[3].Amount.String())
	assert.Equal(t, "14.5", got.TotalHoursSum.String())
	assert.True(t, got.OvertimeAmount.IsZero())
	assert.Equal(t, "1690", got.TotalAmount.String())
}

func TestBuildMonthlyBill_Idempotent(t *testing.T) {
	in := bill.BillInput{
		Rate:         dec("100"),
		OvertimeRate: dec("5"),
		OvertimeKms:  dec("10"),
		Items:        []bill.ItemInput{meterItem("2024-03-01", "0", "8")},
	}
	assert.Equal(t, BuildMonthlyBill(in), BuildMonthlyBill(in))
}
