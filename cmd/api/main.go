package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joseph001479/venda-hoje/internal/config/env"
	"github.com/joseph001479/venda-hoje/internal/domain"
	"github.com/joseph001479/venda-hoje/internal/repository/ghostpay"
	"github.com/joseph001479/venda-hoje/internal/router"
	"github.com/joseph001479/venda-hoje/internal/service"
	"github.com/joseph001479/venda-hoje/libs"
)

func main() {
	cfg, err := env.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	libs.SetupLogger(os.Stdout, cfg.DEBUG)
	env.Show(cfg)

	// Initialize GhostPay client and Payment Service
	gateway := ghostpay.NewClient(cfg.GHOSTPAY_API_URL, cfg.BasicAuth, cfg.GHOSTPAY_COMPANY_ID)
	paymentSvc := service.NewPaymentService(gateway, cfg.TestMode())
	paymentHandler := router.NewPaymentHandler(paymentSvc)

	// Initialize Payment Routes
	paymentRoutes := router.Routes(paymentHandler)

	if cfg.PPROF {
		router.Profiler(paymentRoutes)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Middleware(paymentRoutes),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      ghostpay.REQUEST_TIMEOUT + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    256 << 10, // 256 KB
	}

	mode := "SIM"
	if cfg.TestMode() {
		mode = "NÃO (modo teste)"
	}
	slog.Info("🚀 VENDA HOJE API",
		"url", "http://"+cfg.Addr(),
		"produto", domain.PRODUCT_NAME,
		"preco", domain.FormatPrice(domain.PRODUCT_PRICE),
		"api_configurada", mode,
		"cors", "habilitado para todas as origens",
	)

	if err := libs.GracefulShutdown(context.Background(), server, 10*time.Second); err != nil {
		log.Fatalf("Erro no servidor: %v", err)
	}
}
