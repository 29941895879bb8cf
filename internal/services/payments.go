package services

import (
	"context"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
)

// PaymentService runs test transactions against the billing sandbox.
type PaymentService struct {
	client *api.Client
}

// NewPaymentService creates a payment service over the request pipeline.
func NewPaymentService(client *api.Client) *PaymentService {
	return &PaymentService{client: client}
}

// TestTransaction submits a sandbox payment.
func (s *PaymentService) TestTransaction(ctx context.Context, payment models.PaymentRequest) (*models.MessageResponse, error) {
	resp, err := s.client.Post(ctx, "/payments/test-transaction", payment)
	if err != nil {
		return nil, err
	}

	var ack models.MessageResponse
	if err := resp.Decode(&ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
