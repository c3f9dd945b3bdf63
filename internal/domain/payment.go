package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PRODUCT_NAME  = "Mentoria Venda Hoje - Acesso Vitalício"
	PRODUCT_PRICE = 890 // centavos

	MIN_AMOUNT = 100 // R$ 1,00

	DEFAULT_PHONE     = "11999999999"
	DEFAULT_DOCUMENT  = "00000000191"
	DOCUMENT_TYPE_CPF = "CPF"

	STATUS_PENDING = "pending"
	STATUS_PAID    = "paid"
)

type Customer struct {
	Name     string
	Email    string
	Phone    string
	Document string
}

// PaymentRequest is a checkout as sent by the storefront.
// Amount is in centavos.
type PaymentRequest struct {
	Customer    Customer
	Amount      int64
	Description string
}

// Transaction is the normalized view of a processor transaction.
// Fields are passed through exactly as the processor sent them.
type Transaction struct {
	ID     any
	Status any
	Amount any
}

type PixPayload struct {
	QRCode string
}

// Validate checks the fields that must be present before anything is sent
// to the processor.
func (p *PaymentRequest) Validate() error {
	if strings.TrimSpace(p.Customer.Name) == "" || strings.TrimSpace(p.Customer.Email) == "" {
		return NewValidationError("Nome e email são obrigatórios")
	}
	if p.Amount < MIN_AMOUNT {
		return NewValidationError("Valor mínimo é R$ 1,00")
	}
	return nil
}

// ApplyDefaults fills the optional fields with the checkout fallbacks. Name
// and email are required and left as given.
func (p *PaymentRequest) ApplyDefaults() {
	if p.Customer.Phone == "" {
		p.Customer.Phone = DEFAULT_PHONE
	}
	p.Customer.Document = CleanDocument(p.Customer.Document)
	if p.Description == "" {
		p.Description = PRODUCT_NAME
	}
}

// CleanDocument keeps only the digits of a CPF/CNPJ. An empty result is
// replaced by DEFAULT_DOCUMENT so the processor never gets a blank document.
func CleanDocument(document string) string {
	var b strings.Builder
	b.Grow(len(document))
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DEFAULT_DOCUMENT
	}
	return b.String()
}

// FormatPrice renders centavos as a BRL label, e.g. 890 -> "R$ 8.90".
func FormatPrice(centavos int64) string {
	return "R$ " + decimal.New(centavos, -2).StringFixed(2)
}
