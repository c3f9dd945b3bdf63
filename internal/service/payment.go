package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph001479/venda-hoje/internal/core"
	"github.com/joseph001479/venda-hoje/internal/domain"
	"github.com/joseph001479/venda-hoje/internal/metrics"
	"github.com/joseph001479/venda-hoje/internal/model"
)

const (
	TEST_QR_CODE = "00020101021226920014br.gov.bcb.pix2560api.ghostpay.io/qrcode/example5204000053039865802BR5913VENDAS+HOJE6009SAO+PAULO62070503***6304E2CA"

	TEST_TRANSACTION_PREFIX = "test_"
	TEST_CREATE_MESSAGE     = "Modo de teste - Configure as chaves no Render"
	TEST_CHECK_MESSAGE      = "Modo de teste - Pagamento simulado"

	MODE_LIVE = "live"
	MODE_TEST = "test"
)

type PaymentService struct {
	gateway  core.TransactionGateway
	testMode bool

	// Now is the clock used for timestamps. Replaced in tests.
	Now func() time.Time
}

// NewPaymentService wires the service to a gateway. With testMode set the
// gateway is never called and may be nil.
func NewPaymentService(gateway core.TransactionGateway, testMode bool) *PaymentService {
	return &PaymentService{
		gateway:  gateway,
		testMode: testMode,
		Now:      time.Now,
	}
}

func (ps *PaymentService) TestMode() bool {
	return ps.testMode
}

func (ps *PaymentService) mode() string {
	if ps.testMode {
		return MODE_TEST
	}
	return MODE_LIVE
}

// CreatePayment runs a checkout. req is nil when the body could not be read.
//
// In test mode a synthetic pending transaction is returned without
// validation. Otherwise the request is validated, translated, forwarded and
// the processor answer normalized.
func (ps *PaymentService) CreatePayment(ctx context.Context, req *model.PaymentRequest) (resp *model.CreatePaymentResponse, err error) {
	defer func() {
		result := "success"
		if err != nil {
			result = "error"
		}
		metrics.Payments.WithLabelValues(ps.mode(), result).Inc()
	}()

	if ps.testMode {
		return ps.testPayment(req), nil
	}

	if req == nil {
		return nil, domain.NewValidationError("Dados não recebidos")
	}
	if req.Customer == nil {
		return nil, domain.NewValidationError("Estrutura de dados inválida")
	}

	payment := toDomain(req)
	if err := payment.Validate(); err != nil {
		slog.Info("[SVC:Payment:Create:01] - Invalid payment request", "error", err)
		return nil, err
	}
	payment.ApplyDefaults()

	payload := toProcessorRequest(payment, ps.Now())
	tx, err := ps.gateway.CreateTransaction(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	pix, ok := extractPix(tx)
	if !ok {
		slog.Error("[SVC:Payment:Create:02] - Processor response without QR Code", "id", tx.Get("id"))
		return nil, domain.ErrQRCodeMissing
	}

	transaction := extractTransaction(tx)
	slog.Info("[SVC:Payment:Create:03] - PIX transaction created", "id", transaction.ID, "status", transaction.Status, "amount", transaction.Amount)
	return toCreatePaymentResponse(transaction, pix), nil
}

func (ps *PaymentService) testPayment(req *model.PaymentRequest) *model.CreatePaymentResponse {
	amount := int64(domain.PRODUCT_PRICE)
	if req != nil && req.Amount != nil {
		amount = *req.Amount
	}

	transaction := domain.Transaction{
		ID:     fmt.Sprintf("%s%d", TEST_TRANSACTION_PREFIX, ps.Now().Unix()),
		Status: domain.STATUS_PENDING,
		Amount: amount,
	}
	slog.Debug("[SVC:Payment:Create:Test] - Returning synthetic transaction", "id", transaction.ID, "amount", amount)

	resp := toCreatePaymentResponse(transaction, domain.PixPayload{QRCode: TEST_QR_CODE})
	resp.TestMode = true
	resp.Message = TEST_CREATE_MESSAGE
	return resp
}

// CheckPayment returns the processor's view of a transaction. In test mode
// every transaction is reported as paid.
func (ps *PaymentService) CheckPayment(ctx context.Context, transactionID string) (*model.CheckPaymentResponse, error) {
	if ps.testMode {
		return &model.CheckPaymentResponse{
			Success:  true,
			TestMode: true,
			Status:   domain.STATUS_PAID,
			Message:  TEST_CHECK_MESSAGE,
		}, nil
	}

	tx, err := ps.gateway.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", transactionID, err)
	}

	slog.Debug("[SVC:Payment:Check:01] - Transaction status", "transaction_id", transactionID, "status", tx.Get("status"))
	return toCheckPaymentResponse(tx), nil
}
