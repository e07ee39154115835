package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheque       Method = "cheque"
	MethodUPI          Method = "upi"
	MethodOther        Method = "other"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodUPI, MethodOther:
		return true
	}
	return false
}

// PayableKind names what a payment is settling. Jobs are the only kind today.
type PayableKind string

const PayableKindJob PayableKind = "job"

// PayableRef links a payment to the record it settles. A nil *PayableRef is a
// payment on account.
type PayableRef struct {
	Kind PayableKind
	ID   string
}

// Payment is money received from a client.
type Payment struct {
	ID        string
	ClientID  string
	Amount    decimal.Decimal
	Date      time.Time
	Method    Method
	Reference *string
	Notes     *string
	Payable   *PayableRef
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	ClientName *string
}
