package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"kopioutlet/pkg/logger"
	ordermem "kopioutlet/pkg/order/memory"
	"kopioutlet/pkg/otel"
	"kopioutlet/pkg/outlet"
	paymem "kopioutlet/pkg/payment/memory"
	"kopioutlet/pkg/pricing"
)

var (
	svc    *outlet.Service
	log    *zap.Logger
	tracer trace.Tracer
)

type ctxKey int

const requestIDKey ctxKey = 1

// @title Kopi Outlet API
// @version 1.0
// @description API for ordering drinks and paying for them
// @host localhost:8443
// @BasePath /
func main() {
	log = logger.New("kopioutlet")
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "kopioutlet", Host: os.Getenv("OTEL_HOST"), Probability: 1.0})
	if err != nil {
		log.Error("init tracing", zap.Error(err))
		return
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("kopioutlet")

	cache := pricing.NewCache(pricing.RandomSource())
	orders := ordermem.New(pricing.NewCalculator(cache))
	payments := paymem.New(orders)
	svc = outlet.New(orders, payments, log)

	r := newRouter()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8443"
	}
	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServeTLS(addr, "certs/server.crt", "certs/server.key", r); err != nil {
		log.Error("server closed", zap.Error(err))
	}
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, traceMiddleware)

	r.HandleFunc("/order", addOrderHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders", pendingOrdersHandler).Methods(http.MethodGet)
	r.HandleFunc("/order/lock/{orderId}", lockOrderHandler).Methods(http.MethodPut)
	r.HandleFunc("/order/{orderId}", getOrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/order/{orderId}", updateOrderHandler).Methods(http.MethodPut)
	r.HandleFunc("/order/{orderId}", removeOrderHandler).Methods(http.MethodDelete)
	r.HandleFunc("/payment/{orderId}", doPaymentHandler).Methods(http.MethodPost)
	r.HandleFunc("/payment/{orderId}", getPaymentHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// requestIDMiddleware tags every request with a uuid for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		log.Info("request",
			zap.String("requestId", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
