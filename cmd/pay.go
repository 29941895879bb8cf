package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
)

// PayTest submits a sandbox transaction against /payments/test-transaction.
func (r *Runner) PayTest(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	payment := models.PaymentRequest{
		CardNumber: cmd.String("card"),
		ExpiryDate: cmd.String("expiry"),
		CVV:        cmd.String("cvv"),
		Amount:     cmd.Float("amount"),
		PlanName:   cmd.String("plan"),
	}

	r.logger.Info("submitting test transaction", "plan", payment.PlanName, "amount", payment.Amount)

	resp, err := r.payments.TestTransaction(ctx, payment)
	if err != nil {
		return err
	}

	message := resp.Message
	if message == "" {
		message = "transaction accepted"
	}
	return r.writePlain("✓ %s\n", message)
}
