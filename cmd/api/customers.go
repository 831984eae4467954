package main

import (
	"errors"
	"net/http"

	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID = errors.New("invalid ID format")
)

type CustomerRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"required,numeric,min=10,max=11"`
	Email   string `json:"email" validate:"required,email,max=150"`
	Address string `json:"address" validate:"required,max=255"`
}

func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}

	return id, nil
}

func (app *application) objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return parseObjectID(chi.URLParam(r, name))
}

// registerCustomerHandler godoc
//
//	@Summary		Register customer
//	@Description	Registers a new customer, active by default
//	@Tags			customers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CustomerRequest	true	"Customer data"
//	@Success		201		{object}	domain.Customer
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/customers [post]
func (app *application) registerCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer, err := app.customerService.Register(r.Context(), service.CustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCustomersHandler godoc
//
//	@Summary		List active customers
//	@Tags			customers
//	@Produce		json
//	@Success		200	{array}	domain.Customer
//	@Router			/customers [get]
func (app *application) listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := app.customerService.ListActive(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, customers); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCustomerHandler godoc
//
//	@Summary		Get customer by ID
//	@Tags			customers
//	@Produce		json
//	@Param			customer_id	path		string	true	"Customer ID"
//	@Success		200			{object}	domain.Customer
//	@Failure		404			{object}	map[string]string
//	@Router			/customers/{customer_id} [get]
func (app *application) getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "customer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer, err := app.customerService.GetByID(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCustomerByEmailHandler godoc
//
//	@Summary		Get customer by email
//	@Tags			customers
//	@Produce		json
//	@Param			email	path		string	true	"Customer email"
//	@Success		200		{object}	domain.Customer
//	@Failure		404		{object}	map[string]string
//	@Router			/customers/by-email/{email} [get]
func (app *application) getCustomerByEmailHandler(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		app.badRequestResponse(w, r, errors.New("email is required"))
		return
	}

	customer, err := app.customerService.GetByEmail(r.Context(), email)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// searchCustomersHandler godoc
//
//	@Summary		Search customers by name
//	@Description	Case-insensitive substring match on the customer name
//	@Tags			customers
//	@Produce		json
//	@Param			name	query	string	true	"Name fragment"
//	@Success		200		{array}	domain.Customer
//	@Router			/customers/search [get]
func (app *application) searchCustomersHandler(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("name")
	if fragment == "" {
		app.badRequestResponse(w, r, errors.New("name query parameter is required"))
		return
	}

	customers, err := app.customerService.SearchByName(r.Context(), fragment)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, customers); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCustomerHandler godoc
//
//	@Summary		Update customer
//	@Tags			customers
//	@Accept			json
//	@Produce		json
//	@Param			customer_id	path		string			true	"Customer ID"
//	@Param			request		body		CustomerRequest	true	"Customer data"
//	@Success		200			{object}	domain.Customer
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/customers/{customer_id} [put]
func (app *application) updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "customer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req CustomerRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer, err := app.customerService.Update(r.Context(), id, service.CustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deactivateCustomerHandler godoc
//
//	@Summary		Deactivate customer (soft delete)
//	@Description	Fails if the customer is already inactive
//	@Tags			customers
//	@Param			customer_id	path	string	true	"Customer ID"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/customers/{customer_id} [delete]
func (app *application) deactivateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "customer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.customerService.Deactivate(r.Context(), id); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toggleCustomerStatusHandler godoc
//
//	@Summary		Toggle customer active flag
//	@Description	Idempotent toggle, flips the flag on every call
//	@Tags			customers
//	@Produce		json
//	@Param			customer_id	path		string	true	"Customer ID"
//	@Success		200			{object}	domain.Customer
//	@Failure		404			{object}	map[string]string
//	@Router			/customers/{customer_id}/status [patch]
func (app *application) toggleCustomerStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "customer_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	customer, err := app.customerService.ToggleActive(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, customer); err != nil {
		app.internalServerError(w, r, err)
	}
}
