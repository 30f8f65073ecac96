package main

import (
	"encoding/xml"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"kopioutlet/pkg/order"
	"kopioutlet/pkg/otel"
	"kopioutlet/pkg/payment"
)

// addOrderHandler creates or replaces an order.
// @Summary Add order
// @Accept json,xml
// @Produce json,xml
// @Param order body order.Order true "Order"
// @Success 200 {object} order.Order
// @Router /order [post]
func addOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addOrderHandler")
	defer span.End()

	var o order.Order
	if err := decode(r, &o); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	stored, err := svc.AddOrder(ctx, o)
	if err != nil {
		log.Error("add order", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, stored)
}

// getOrderHandler retrieves an order by id.
// @Summary Get order
// @Produce json,xml
// @Param orderId path string true "Order ID"
// @Success 200 {object} order.Order
// @Router /order/{orderId} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id := mux.Vars(r)["orderId"]
	o, err := svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error("get order", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, o)
}

// updateOrderHandler updates an unlocked order.
// @Summary Update order
// @Accept json,xml
// @Produce json,xml
// @Param orderId path string true "Order ID"
// @Param order body order.Order true "Order"
// @Success 200 {object} order.Order
// @Router /order/{orderId} [put]
func updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateOrderHandler")
	defer span.End()

	id := mux.Vars(r)["orderId"]
	var upd order.Order
	if err := decode(r, &upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := svc.UpdateOrder(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrLocked):
			w.WriteHeader(http.StatusNotModified)
		case errors.Is(err, order.ErrNotFound):
			http.NotFound(w, r)
		default:
			log.Error("update order", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respond(w, r, http.StatusOK, o)
}

// ordersDoc wraps the pending-orders list for XML responses.
type ordersDoc struct {
	XMLName xml.Name      `xml:"orders"`
	Orders  []order.Order `xml:"order"`
}

// pendingOrdersHandler lists the orders not yet locked.
// @Summary List pending orders
// @Produce json,xml
// @Success 200 {array} order.Order
// @Router /orders [get]
func pendingOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "pendingOrdersHandler")
	defer span.End()

	orders, err := svc.PendingOrders(ctx)
	if err != nil {
		log.Error("pending orders", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if wantsXML(r.Header.Get("Accept")) {
		respond(w, r, http.StatusOK, ordersDoc{Orders: orders})
		return
	}
	respond(w, r, http.StatusOK, orders)
}

// lockOrderHandler makes an order immutable.
// @Summary Lock order
// @Produce json,xml
// @Param orderId path string true "Order ID"
// @Success 200 {object} order.Order
// @Router /order/lock/{orderId} [put]
func lockOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "lockOrderHandler")
	defer span.End()

	id := mux.Vars(r)["orderId"]
	o, err := svc.LockOrder(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			w.Header().Set("X-Order-Id", id)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		log.Error("lock order", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, o)
}

// removeOrderHandler deletes an order and its payment.
// @Summary Remove order
// @Produce json,xml
// @Param orderId path string true "Order ID"
// @Success 200 {boolean} bool
// @Router /order/{orderId} [delete]
func removeOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeOrderHandler")
	defer span.End()

	id := mux.Vars(r)["orderId"]
	removed, err := svc.RemoveOrder(ctx, id)
	if err != nil {
		log.Error("remove order", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respond(w, r, http.StatusOK, removed)
}

// doPaymentHandler submits a payment for an order.
// @Summary Pay for order
// @Accept json,xml
// @Produce json,xml
// @Param orderId path string true "Order ID"
// @Param payment body payment.Payment true "Payment"
// @Success 200 {object} payment.Status
// @Router /payment/{orderId} [post]
func doPaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "doPaymentHandler")
	defer span.End()

	id := mux.Vars(r)["orderId"]
	var candidate payment.Payment
	if err := decode(r, &candidate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := svc.DoPayment(ctx, id, candidate)
	if err != nil {
		log.Error("do payment", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if status.Code != payment.Accepted {
		// 304 responses carry no body, so the outcome rides a header.
		w.Header().Set("X-Payment-Status", status.Message)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respond(w, r, http.StatusOK, status)
}

// getPaymentHandler retrieves the payment registered for an order.
// @Summary Get payment
// @Produce json,xml
// @Param orderId path string true "Order ID"
// @Success 200 {object} payment.Payment
// @Router /payment/{orderId} [get]
func getPaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getPaymentHandler")
	defer span.End()

	id := mux.Vars(r)["orderId"]
	p, err := svc.GetPayment(ctx, id)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error("get payment", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, p)
}
