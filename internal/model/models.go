package model

// Storefront -> API

type CustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Document string `json:"document,omitempty"`
}

type PaymentRequest struct {
	Customer    *CustomerRequest `json:"customer"`
	Amount      *int64           `json:"amount,omitempty"`
	Description string           `json:"description,omitempty"`
}

// API -> GhostPay

type ProcessorDocument struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type ProcessorCustomer struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Document ProcessorDocument `json:"document"`
}

type ProcessorItem struct {
	Title       string `json:"title"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	ExternalRef string `json:"externalRef"`
}

type ProcessorMetadata struct {
	Product    string `json:"product"`
	AccessType string `json:"access_type"`
	Source     string `json:"source"`
}

type ProcessorPixOptions struct{}

type ProcessorPaymentRequest struct {
	PaymentMethod string              `json:"paymentMethod"`
	Customer      ProcessorCustomer   `json:"customer"`
	Items         []ProcessorItem     `json:"items"`
	Amount        int64               `json:"amount"`
	Description   string              `json:"description"`
	Metadata      ProcessorMetadata   `json:"metadata"`
	Pix           ProcessorPixOptions `json:"pix"`
	ExpiresInDays int                 `json:"expiresInDays"`
}

// ProcessorTransaction is the decoded body of a GhostPay transaction.
// It stays untyped because check-payment echoes it back verbatim.
type ProcessorTransaction map[string]any

func (t ProcessorTransaction) Get(key string) any {
	return t[key]
}

func (t ProcessorTransaction) String(key string) string {
	if s, ok := t[key].(string); ok {
		return s
	}
	return ""
}

func (t ProcessorTransaction) Object(key string) map[string]any {
	if m, ok := t[key].(map[string]any); ok {
		return m
	}
	return nil
}

// API -> storefront

type TransactionResponse struct {
	ID     any `json:"id"`
	Status any `json:"status"`
	Amount any `json:"amount"`
}

type PixResponse struct {
	QRCode    string `json:"qr_code"`
	Code      string `json:"code"`
	CopyPaste string `json:"copy_paste"`
}

type CreatePaymentResponse struct {
	Success     bool                `json:"success"`
	TestMode    bool                `json:"test_mode,omitempty"`
	Message     string              `json:"message,omitempty"`
	Transaction TransactionResponse `json:"transaction"`
	Pix         PixResponse         `json:"pix"`
}

type CheckPaymentResponse struct {
	Success  bool   `json:"success"`
	TestMode bool   `json:"test_mode,omitempty"`
	Message  string `json:"message,omitempty"`
	Status   any    `json:"status"`
	PaidAt   any    `json:"paid_at"`
	// Nil in test mode. Live answers always carry the processor object,
	// even when it is empty.
	Transaction *ProcessorTransaction `json:"transaction,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Product     string `json:"product"`
	Price       string `json:"price"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
	CORS        string `json:"cors"`
}

type IndexResponse struct {
	API       string            `json:"api"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Product   string            `json:"product"`
	Price     string            `json:"price"`
	Endpoints map[string]string `json:"endpoints"`
	Docs      string            `json:"docs"`
}
