package payment

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	payments map[string]payment.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p payment.Payment) (payment.Payment, error) {
	p.ID = uuid.NewString()
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) List(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	all, _ := f.FindAll(ctx, filter)
	return all, int64(len(all)), nil
}

func (f *fakePaymentRepo) FindAll(_ context.Context, _ payment.PaymentFilter) ([]payment.Payment, error) {
	var out []payment.Payment
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, p payment.Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.payments[id]; !ok {
		return payment.ErrPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

type stubClients struct{ client.ClientRepository }

func (stubClients) GetByID(_ context.Context, id string) (client.Client, error) {
	if id != "c1" && id != "c2" {
		return client.Client{}, client.ErrClientNotFound
	}
	return client.Client{ID: id}, nil
}

type stubJobs struct{ job.JobRepository }

func (stubJobs) GetByID(_ context.Context, id string) (job.Job, error) {
	if id != "job-c1" {
		return job.Job{}, job.ErrJobNotFound
	}
	return job.Job{ID: id, ClientID: "c1"}, nil
}

func newPaymentService() (payment.PaymentService, *fakePaymentRepo) {
	repo := &fakePaymentRepo{payments: map[string]payment.Payment{}}
	return NewPaymentService(repo, stubClients{}, stubJobs{}), repo
}

func baseRequest() payment.CreatePaymentRequest {
	return payment.CreatePaymentRequest{
		ClientID: "c1",
		Amount:   decimal.RequireFromString("5000"),
		Date:     "2024-03-12",
		Method:   "upi",
	}
}

func TestCreatePayment_OnAccount(t *testing.T) {
	svc, _ := newPaymentService()

	res, err := svc.Create(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Nil(t, res.Payable)
	assert.Equal(t, "2024-03-12", res.Date)
}

func TestCreatePayment_LinkedJob(t *testing.T) {
	svc, _ := newPaymentService()

	req := baseRequest()
	req.Payable = &payment.PayableDTO{Type: "job", ID: "job-c1"}
	res, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res.Payable)
	assert.Equal(t, "job-c1", res.Payable.ID)

	req.Payable = &payment.PayableDTO{Type: "job", ID: "job-missing"}
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, payment.ErrPayableNotFound)

	req.ClientID = "c2"
	req.Payable = &payment.PayableDTO{Type: "job", ID: "job-c1"}
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, payment.ErrPayableWrongOwner)

	req.Payable = &payment.PayableDTO{Type: "invoice", ID: "x"}
	_, err = svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdatePayment_ClientChangeRechecksLink(t *testing.T) {
	svc, repo := newPaymentService()
	ctx := context.Background()

	req := baseRequest()
	req.Payable = &payment.PayableDTO{Type: "job", ID: "job-c1"}
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	other := "c2"
	_, err = svc.Update(ctx, payment.UpdatePaymentRequest{ID: created.ID, ClientID: &other})
	assert.ErrorIs(t, err, payment.ErrPayableWrongOwner)

	updated, err := svc.Update(ctx, payment.UpdatePaymentRequest{ID: created.ID, ClientID: &other, Unlink: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Payable)
	assert.Equal(t, "c2", repo.payments[created.ID].ClientID)
}

func TestCreatePayment_UnknownClient(t *testing.T) {
	svc, _ := newPaymentService()
	req := baseRequest()
	req.ClientID = "c404"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}
