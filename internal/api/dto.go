package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/walletops/internal/domain"
)

// CreateAccountRequest is the payload for POST /accounts.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// AmountRequest is the payload for deposit and withdraw. The amount is in
// major currency units (dollars, not cents).
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AccountResponse is the client-facing account view: balance in major units,
// timestamps in RFC 3339.
type AccountResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func newAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   a.BalanceDecimal().InexactFloat64(),
		Currency:  a.Currency,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

func newAccountListResponse(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, newAccountResponse(a))
	}
	return out
}
