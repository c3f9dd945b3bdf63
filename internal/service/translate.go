package service

import (
	"fmt"
	"time"

	"github.com/joseph001479/venda-hoje/internal/domain"
	"github.com/joseph001479/venda-hoje/internal/model"
)

const (
	PAYMENT_METHOD_PIX   = "PIX"
	EXPIRES_IN_DAYS      = 1
	EXTERNAL_REF_PREFIX  = "venda-hoje-"
	METADATA_PRODUCT     = "mentoria_venda_hoje"
	METADATA_ACCESS_TYPE = "vitalicio"
	METADATA_SOURCE      = "landing_page"
)

// Keys of the processor's pix object that may carry the BR Code, in the
// order they are tried. The first non-empty string wins.
var QR_CODE_KEYS = []string{"qrcode", "qrCode", "text"}

// toDomain converts the storefront body into a PaymentRequest. A missing
// amount means the product price.
func toDomain(req *model.PaymentRequest) *domain.PaymentRequest {
	p := &domain.PaymentRequest{
		Amount:      domain.PRODUCT_PRICE,
		Description: req.Description,
	}
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	if req.Customer != nil {
		p.Customer = domain.Customer{
			Name:     req.Customer.Name,
			Email:    req.Customer.Email,
			Phone:    req.Customer.Phone,
			Document: req.Customer.Document,
		}
	}
	return p
}

// toProcessorRequest builds the GhostPay create-transaction body. p must be
// validated with defaults applied.
func toProcessorRequest(p *domain.PaymentRequest, now time.Time) *model.ProcessorPaymentRequest {
	return &model.ProcessorPaymentRequest{
		PaymentMethod: PAYMENT_METHOD_PIX,
		Customer: model.ProcessorCustomer{
			Name:  p.Customer.Name,
			Email: p.Customer.Email,
			Phone: p.Customer.Phone,
			Document: model.ProcessorDocument{
				Number: p.Customer.Document,
				Type:   domain.DOCUMENT_TYPE_CPF,
			},
		},
		Items: []model.ProcessorItem{{
			Title:       domain.PRODUCT_NAME,
			UnitPrice:   p.Amount,
			Quantity:    1,
			ExternalRef: fmt.Sprintf("%s%d", EXTERNAL_REF_PREFIX, now.Unix()),
		}},
		Amount:      p.Amount,
		Description: p.Description,
		Metadata: model.ProcessorMetadata{
			Product:    METADATA_PRODUCT,
			AccessType: METADATA_ACCESS_TYPE,
			Source:     METADATA_SOURCE,
		},
		Pix:           model.ProcessorPixOptions{},
		ExpiresInDays: EXPIRES_IN_DAYS,
	}
}

func extractTransaction(tx model.ProcessorTransaction) domain.Transaction {
	return domain.Transaction{
		ID:     tx.Get("id"),
		Status: tx.Get("status"),
		Amount: tx.Get("amount"),
	}
}

// extractPix looks up the BR Code in the pix object following QR_CODE_KEYS.
func extractPix(tx model.ProcessorTransaction) (domain.PixPayload, bool) {
	pix := tx.Object("pix")
	for _, key := range QR_CODE_KEYS {
		if code, ok := pix[key].(string); ok && code != "" {
			return domain.PixPayload{QRCode: code}, true
		}
	}
	return domain.PixPayload{}, false
}

func toCreatePaymentResponse(transaction domain.Transaction, pix domain.PixPayload) *model.CreatePaymentResponse {
	return &model.CreatePaymentResponse{
		Success: true,
		Transaction: model.TransactionResponse{
			ID:     transaction.ID,
			Status: transaction.Status,
			Amount: transaction.Amount,
		},
		Pix: toPixResponse(pix),
	}
}

func toPixResponse(pix domain.PixPayload) model.PixResponse {
	return model.PixResponse{
		QRCode:    pix.QRCode,
		Code:      pix.QRCode,
		CopyPaste: pix.QRCode,
	}
}

func toCheckPaymentResponse(tx model.ProcessorTransaction) *model.CheckPaymentResponse {
	return &model.CheckPaymentResponse{
		Success:     true,
		Status:      tx.Get("status"),
		PaidAt:      tx.Get("paidAt"),
		Transaction: &tx,
	}
}
