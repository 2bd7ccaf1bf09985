package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/token"
)

// StripeBankTokenizer converts the teacher's IBAN into a Stripe bank token at
// submission, so the registration payload carries an opaque token instead of
// raw banking details. Payment processing itself lives server-side.
type StripeBankTokenizer struct{}

func NewStripeBankTokenizer() *StripeBankTokenizer {
	return &StripeBankTokenizer{}
}

// TokenizeIBAN creates a bank account token for the given IBAN and holder.
func (t *StripeBankTokenizer) TokenizeIBAN(ctx context.Context, iban, holderName string) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	params := &stripe.TokenParams{
		BankAccount: &stripe.BankAccountParams{
			Country:           stripe.String("FR"),
			Currency:          stripe.String(string(stripe.CurrencyEUR)),
			AccountNumber:     stripe.String(normalized),
			AccountHolderName: stripe.String(holderName),
			AccountHolderType: stripe.String("individual"),
		},
	}
	params.Context = ctx

	tok, err := token.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create bank token: %w", err)
	}
	return tok.ID, nil
}
