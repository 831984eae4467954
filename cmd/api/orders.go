package main

import (
	"net/http"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
)

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type OrderRequest struct {
	CustomerID   string             `json:"customer_id" validate:"required"`
	RestaurantID string             `json:"restaurant_id" validate:"required"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed delivered cancelled"`
}

// createOrderHandler godoc
//
//	@Summary		Create order
//	@Description	Creates a pending order, snapshotting product prices at creation time
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OrderRequest	true	"Order data"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customerID, err := parseObjectID(req.CustomerID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurantID, err := parseObjectID(req.RestaurantID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := parseObjectID(item.ProductID)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		items = append(items, service.OrderItemInput{ProductID: productID, Quantity: item.Quantity})
	}

	order, err := app.orderService.Create(r.Context(), service.OrderInput{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Items:        items,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary	Get order by ID
//	@Tags		orders
//	@Produce	json
//	@Param		order_id	path		string	true	"Order ID"
//	@Success	200			{object}	domain.Order
//	@Failure	404			{object}	map[string]string
//	@Router		/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "order_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.GetByID(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersByCustomerHandler godoc
//
//	@Summary	List orders of a customer
//	@Tags		orders
//	@Produce	json
//	@Param		customer_id	path	string	true	"Customer ID"
//	@Success	200			{array}	domain.Order
//	@Router		/orders/by-customer/{customer_id} [get]
func (app *application) listOrdersByCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "customer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	orders, err := app.orderService.ListByCustomer(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addOrderItemHandler godoc
//
//	@Summary		Add item to order
//	@Description	Only pending orders accept new items, the unit price is snapshotted at add time
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string				true	"Order ID"
//	@Param			request		body		OrderItemRequest	true	"Item data"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id}/items [post]
func (app *application) addOrderItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "order_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OrderItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	productID, err := parseObjectID(req.ProductID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.AddItem(r.Context(), id, service.OrderItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Description	Allowed transitions: pending to confirmed or cancelled, confirmed to delivered or cancelled
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string				true	"Order ID"
//	@Param			request		body		OrderStatusRequest	true	"New status"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "order_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req OrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}
