package router

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	json "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joseph001479/venda-hoje/internal/domain"
	"github.com/joseph001479/venda-hoje/internal/model"
	"github.com/joseph001479/venda-hoje/internal/service"
)

const (
	ROUTE_INDEX            = "GET /{$}"
	ROUTE_INDEX_PREFLIGHT  = "OPTIONS /{$}"
	ROUTE_HEALTH_CHECK     = "GET /health"
	ROUTE_HEALTH_PREFLIGHT = "OPTIONS /health"
	ROUTE_PAYMENT_CREATE   = "POST /create-payment"
	ROUTE_CREATE_PREFLIGHT = "OPTIONS /create-payment"
	ROUTE_PAYMENT_CHECK    = "GET /check-payment/{transactionId}"
	ROUTE_CHECK_PREFLIGHT  = "OPTIONS /check-payment/{transactionId}"
	ROUTE_METRICS          = "GET /metrics"

	API_NAME         = "Venda Hoje Checkout API"
	SERVICE_NAME     = "Venda Hoje API"
	API_VERSION      = "1.0.0"
	DOCS_URL         = "https://github.com/Joseph001479/venda-hoje"
	TIMESTAMP_FORMAT = "2006-01-02 15:04:05"

	MAX_BODY_BYTES = 1 << 20
)

type paymentHandler struct {
	Svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *paymentHandler {
	return &paymentHandler{Svc: svc}
}

func Routes(handler *paymentHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(ROUTE_INDEX, handler.Index)
	mux.HandleFunc(ROUTE_HEALTH_CHECK, handler.HealthCheck)
	mux.HandleFunc(ROUTE_PAYMENT_CREATE, handler.CreatePayment)
	mux.HandleFunc(ROUTE_PAYMENT_CHECK, handler.CheckPayment)

	mux.HandleFunc(ROUTE_INDEX_PREFLIGHT, Preflight)
	mux.HandleFunc(ROUTE_HEALTH_PREFLIGHT, Preflight)
	mux.HandleFunc(ROUTE_CREATE_PREFLIGHT, Preflight)
	mux.HandleFunc(ROUTE_CHECK_PREFLIGHT, Preflight)

	mux.Handle(ROUTE_METRICS, promhttp.Handler())

	return mux
}

// Profiler mounts the pprof handlers on mux.
func Profiler(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// Preflight answers CORS pre-flight requests with an empty 200.
func Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *paymentHandler) environment() string {
	if h.Svc.TestMode() {
		return "development"
	}
	return "production"
}

func (h *paymentHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.IndexResponse{
		API:     API_NAME,
		Version: API_VERSION,
		Status:  "online",
		Product: domain.PRODUCT_NAME,
		Price:   domain.FormatPrice(domain.PRODUCT_PRICE),
		Endpoints: map[string]string{
			"POST /create-payment":    "Criar pagamento PIX",
			"GET /check-payment/<id>": "Verificar status",
			"GET /health":             "Status da API",
		},
		Docs: DOCS_URL,
	})
}

func (h *paymentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:      "OK",
		Service:     SERVICE_NAME,
		Version:     API_VERSION,
		Product:     domain.PRODUCT_NAME,
		Price:       domain.FormatPrice(domain.PRODUCT_PRICE),
		Environment: h.environment(),
		Timestamp:   time.Now().Format(TIMESTAMP_FORMAT),
		CORS:        "enabled",
	})
}

func (h *paymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	// An unreadable body is passed on as nil; test mode does not need it and
	// the service rejects it otherwise.
	var req *model.PaymentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)).Decode(&req); err != nil {
		slog.Debug("[Router:Payment:Create:01] - Could not decode body", "request_id", middleware.GetReqID(r.Context()), "error", err)
		req = nil
	}

	resp, err := h.Svc.CreatePayment(r.Context(), req)
	if err != nil {
		var validationErr *domain.ValidationError
		var upstreamErr *domain.UpstreamError
		switch {
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, validationErr.Message, "")
		case errors.As(err, &upstreamErr):
			writeError(w, upstreamStatus(upstreamErr.StatusCode), upstreamErr.Error(), upstreamErr.Details)
		case errors.Is(err, domain.ErrQRCodeMissing):
			writeError(w, http.StatusInternalServerError, domain.ErrQRCodeMissing.Error(), "")
		default:
			slog.Error("[Router:Payment:Create:02] - Failed to create payment", "request_id", middleware.GetReqID(r.Context()), "error", err)
			writeError(w, http.StatusInternalServerError, "Erro interno: "+err.Error(), "")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *paymentHandler) CheckPayment(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("transactionId")

	resp, err := h.Svc.CheckPayment(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, domain.ErrNotFound.Error(), "")
			return
		}
		slog.Error("[Router:Payment:Check:01] - Failed to check payment", "request_id", middleware.GetReqID(r.Context()), "transaction_id", transactionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro: "+err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// upstreamStatus passes the processor status through unless it is one that
// cannot carry the error body, which becomes 502.
func upstreamStatus(code int) int {
	switch {
	case code < http.StatusOK, code == http.StatusNoContent, code == http.StatusResetContent, code == http.StatusNotModified:
		return http.StatusBadGateway
	}
	return code
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[Router:WriteJSON] - Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:   true,
		Message: message,
		Details: details,
	})
}
