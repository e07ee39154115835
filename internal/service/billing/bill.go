package billing

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/shopspring/decimal"
)

// BuildMonthlyBill prices every item and totals the bill.
//
// A metered item's hours are end_meter - start_meter; a manual item's hours are
// taken as entered. An item's own rate overrides the bill rate, and a manual item
// may fix its amount outright. Overtime is priced from the kilometres entered on
// the bill, not from the items.
func BuildMonthlyBill(in bill.BillInput) bill.MonthlyVehicleBill {
	b := bill.MonthlyVehicleBill{
		VehicleID:    in.VehicleID,
		ClientID:     in.ClientID,
		Month:        in.Month,
		Year:         in.Year,
		Rate:         in.Rate,
		PerDayKm:     in.PerDayKm,
		OvertimeRate: in.OvertimeRate,
		OvertimeKms:  in.OvertimeKms,
		Notes:        in.Notes,
		Items:        make([]bill.BillItem, 0, len(in.Items)),
	}

	hoursSum, itemsSum := decimal.Zero, decimal.Zero
	for _, it := range in.Items {
		item := bill.BillItem{
			ItemDate:   dateOnly(it.ItemDate),
			StartMeter: it.StartMeter,
			EndMeter:   it.EndMeter,
			IsManual:   it.IsManual,
			Remarks:    it.Remarks,
			Rate:       in.Rate,
		}
		if it.Rate != nil {
			item.Rate = *it.Rate
		}

		if it.IsManual {
			item.TotalHours = valueOr(it.Hours)
		} else {
			item.TotalHours = valueOr(it.EndMeter).Sub(valueOr(it.StartMeter))
		}

		if it.IsManual && it.Amount != nil {
			item.Amount = round(*it.Amount)
		} else {
			item.Amount = round(item.TotalHours.Mul(item.Rate))
		}

		hoursSum = hoursSum.Add(item.TotalHours)
		itemsSum = itemsSum.Add(item.Amount)
		b.Items = append(b.Items, item)
	}

	b.TotalHoursSum = hoursSum.Round(2)
	b.OvertimeAmount = round(in.OvertimeKms.Mul(in.OvertimeRate))
	b.TotalAmount = itemsSum.Add(b.OvertimeAmount)
	return b
}
