package ghostpay

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joseph001479/venda-hoje/internal/domain"
	"github.com/joseph001479/venda-hoje/internal/model"
)

func newPayload() *model.ProcessorPaymentRequest {
	return &model.ProcessorPaymentRequest{
		PaymentMethod: "PIX",
		Customer: model.ProcessorCustomer{
			Name:     "Ana",
			Email:    "a@x.com",
			Phone:    "11999999999",
			Document: model.ProcessorDocument{Number: "00000000191", Type: "CPF"},
		},
		Items:         []model.ProcessorItem{{Title: "Produto", UnitPrice: 890, Quantity: 1, ExternalRef: "venda-hoje-1"}},
		Amount:        890,
		ExpiresInDays: 1,
	}
}

func TestCreateTransactionSendsHeadersAndBody(t *testing.T) {
	var gotMethod, gotAuth, gotCompany, gotAccept, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotCompany = r.Header.Get("Company-ID")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		if err := stdjson.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"tx_1","status":"pending","amount":890,"pix":{"qrcode":"000201"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dG9rZW46", "company-1")
	tx, err := c.CreateTransaction(context.Background(), newPayload())
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s", gotMethod)
	}
	if gotAuth != "Basic dG9rZW46" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotCompany != "company-1" {
		t.Errorf("Company-ID = %q", gotCompany)
	}
	if gotAccept != "application/json" || gotContentType != "application/json" {
		t.Errorf("accept/content-type = %q/%q", gotAccept, gotContentType)
	}
	if gotBody["paymentMethod"] != "PIX" {
		t.Errorf("paymentMethod = %v", gotBody["paymentMethod"])
	}
	if _, ok := gotBody["pix"].(map[string]any); !ok {
		t.Errorf("pix placeholder missing: %v", gotBody["pix"])
	}

	if tx.String("id") != "tx_1" || tx.String("status") != "pending" {
		t.Errorf("unexpected transaction %v", tx)
	}
	if amount, ok := tx.Get("amount").(stdjson.Number); !ok || amount.String() != "890" {
		t.Errorf("amount = %#v, want json.Number 890", tx.Get("amount"))
	}
}

func TestCreateTransactionOmitsCompanyHeaderWhenUnset(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Company-Id"]
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dG9rZW46", "")
	if _, err := c.CreateTransaction(context.Background(), newPayload()); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if present {
		t.Error("Company-ID header should not be sent")
	}
}

func TestCreateTransactionUpstreamError(t *testing.T) {
	longBody := strings.Repeat("é", 250)

	tests := []struct {
		name        string
		status      int
		body        string
		wantDetails string
	}{
		{"short body", http.StatusUnprocessableEntity, `{"message":"invalid document"}`, `{"message":"invalid document"}`},
		{"long body is cut at 200 characters", http.StatusBadGateway, longBody, strings.Repeat("é", 200)},
		{"empty body", http.StatusUnauthorized, "", NO_RESPONSE_DETAILS},
		{"accepted is not success", http.StatusAccepted, `{"id":"x"}`, `{"id":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "t", "").CreateTransaction(context.Background(), newPayload())
			var upstreamErr *domain.UpstreamError
			if !errors.As(err, &upstreamErr) {
				t.Fatalf("expected *domain.UpstreamError, got %v", err)
			}
			if upstreamErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", upstreamErr.StatusCode, tt.status)
			}
			if upstreamErr.Details != tt.wantDetails {
				t.Errorf("details = %q, want %q", upstreamErr.Details, tt.wantDetails)
			}
		})
	}
}

func TestCreateTransactionMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "t", "").CreateTransaction(context.Background(), newPayload())
	if err == nil {
		t.Fatal("expected error")
	}
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		t.Fatalf("malformed JSON must not be an upstream error: %v", err)
	}
}

func TestCreateTransactionConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "t", "").CreateTransaction(context.Background(), newPayload())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetTransaction(t *testing.T) {
	var gotPath, gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"id":"abc 123","status":"paid","paidAt":"2025-01-01T10:00:00Z"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/functions/v1/transactions/", "dG9rZW46", "")
	tx, err := c.GetTransaction(context.Background(), "abc 123")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method = %s", gotMethod)
	}
	if gotPath != "/functions/v1/transactions/abc%20123" {
		t.Errorf("path = %s", gotPath)
	}
	if gotAuth != "Basic dG9rZW46" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if tx.String("status") != "paid" || tx.String("paidAt") == "" {
		t.Errorf("unexpected transaction %v", tx)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusCreated, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			io.WriteString(w, `{}`)
		}))

		_, err := NewClient(srv.URL, "t", "").GetTransaction(context.Background(), "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("status %d: expected ErrNotFound, got %v", status, err)
		}
		srv.Close()
	}
}

func TestDetails(t *testing.T) {
	if got := details(nil); got != NO_RESPONSE_DETAILS {
		t.Errorf("details(nil) = %q", got)
	}
	if got := details([]byte("abc")); got != "abc" {
		t.Errorf("details = %q", got)
	}
	if got := details([]byte(strings.Repeat("x", 201))); len(got) != MAX_DETAILS_CHARS {
		t.Errorf("len = %d", len(got))
	}
}
