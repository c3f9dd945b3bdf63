package core

import (
	"context"

	"github.com/joseph001479/venda-hoje/internal/model"
)

// TransactionGateway is the payment processor as seen by the service layer.
type TransactionGateway interface {
	CreateTransaction(ctx context.Context, payload *model.ProcessorPaymentRequest) (model.ProcessorTransaction, error)
	GetTransaction(ctx context.Context, transactionID string) (model.ProcessorTransaction, error)
}
