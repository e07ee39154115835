package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/billing"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const topOutstandingLimit = 5

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	jobRepo     job.JobRepository
	paymentRepo payment.PaymentRepository
	expenseRepo expense.ExpenseRepository
	now         func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, jobRepo job.JobRepository, paymentRepo payment.PaymentRepository, expenseRepo expense.ExpenseRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		jobRepo:             jobRepo,
		paymentRepo:         paymentRepo,
		expenseRepo:         expenseRepo,
		now:                 time.Now,
	}
}

// GetDashboard loads the month's records in parallel and totals them per client and
// per vehicle with the statement aggregator.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (dashboard.DashboardResponse, error) {
	from, to, err := req.Resolve(s.now())
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	dateFrom, dateTo := from.Format(validator.DateLayout), to.Format(validator.DateLayout)

	var (
		counts   dashboard.Counts
		jobs     []job.Job
		payments []payment.Payment
		expenses []expense.VehicleExpense
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.GetCounts(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		counts = c
		return nil
	})

	g.Go(func() error {
		j, err := s.jobRepo.FindAll(gCtx, job.JobFilter{DateFrom: &dateFrom, DateTo: &dateTo})
		if err != nil {
			return fmt.Errorf("failed to load jobs: %w", err)
		}
		jobs = j
		return nil
	})

	g.Go(func() error {
		p, err := s.paymentRepo.FindAll(gCtx, payment.PaymentFilter{DateFrom: &dateFrom, DateTo: &dateTo})
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		payments = p
		return nil
	})

	g.Go(func() error {
		e, err := s.expenseRepo.FindAll(gCtx, expense.ExpenseFilter{DateFrom: &dateFrom, DateTo: &dateTo})
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		expenses = e
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp := dashboard.DashboardResponse{
		Month:            req.Month,
		Year:             req.Year,
		PeriodFrom:       dateFrom,
		PeriodTo:         dateTo,
		Counts:           counts,
		RevenueJcb:       decimal.Zero,
		RevenueLorry:     decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		PaymentsReceived: decimal.Zero,
		Outstanding:      decimal.Zero,
		TopOutstanding:   []dashboard.ClientBalance{},
	}

	for _, j := range jobs {
		if j.Status == job.StatusPending {
			resp.PendingJobs++
		}
	}

	clients := clientNames(jobs, payments)
	for _, clientID := range sortedKeys(clients) {
		st := billing.BuildClientStatement(clientID, from, to, jobs, payments)
		resp.RevenueJcb = resp.RevenueJcb.Add(st.TotalJcb)
		resp.RevenueLorry = resp.RevenueLorry.Add(st.TotalLorry)
		resp.PaymentsReceived = resp.PaymentsReceived.Add(st.TotalPayments)
		if st.OutstandingBalance.IsPositive() {
			resp.TopOutstanding = append(resp.TopOutstanding, dashboard.ClientBalance{
				ClientID:    clientID,
				ClientName:  clients[clientID],
				Billed:      st.TotalJobsAmount,
				Received:    st.TotalPayments,
				Outstanding: st.OutstandingBalance,
			})
		}
	}
	resp.TotalRevenue = resp.RevenueJcb.Add(resp.RevenueLorry)
	resp.Outstanding = resp.TotalRevenue.Sub(resp.PaymentsReceived)

	vehicles := make(map[string]string, len(expenses))
	for _, e := range expenses {
		vehicles[e.VehicleID] = ""
	}
	for _, vehicleID := range sortedKeys(vehicles) {
		vr := billing.BuildVehicleReport(vehicleID, from, to, nil, expenses)
		resp.TotalExpenses = resp.TotalExpenses.Add(vr.TotalExpenses)
	}

	sort.SliceStable(resp.TopOutstanding, func(i, k int) bool {
		return resp.TopOutstanding[i].Outstanding.GreaterThan(resp.TopOutstanding[k].Outstanding)
	})
	if len(resp.TopOutstanding) > topOutstandingLimit {
		resp.TopOutstanding = resp.TopOutstanding[:topOutstandingLimit]
	}

	return resp, nil
}

// clientNames collects every client seen in the month, keyed by id.
func clientNames(jobs []job.Job, payments []payment.Payment) map[string]string {
	names := make(map[string]string)
	for _, j := range jobs {
		if j.ClientName != nil {
			names[j.ClientID] = *j.ClientName
		} else if _, ok := names[j.ClientID]; !ok {
			names[j.ClientID] = ""
		}
	}
	for _, p := range payments {
		if p.ClientName != nil {
			names[p.ClientID] = *p.ClientName
		} else if _, ok := names[p.ClientID]; !ok {
			names[p.ClientID] = ""
		}
	}
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
