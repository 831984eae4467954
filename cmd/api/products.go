package main

import (
	"errors"
	"net/http"

	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=100"`
	Category     string `json:"category" validate:"max=50"`
	Description  string `json:"description" validate:"max=500"`
	Price        string `json:"price" validate:"required"`
}

func (req ProductRequest) toInput() (service.ProductInput, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return service.ProductInput{}, errors.New("price must be a decimal number")
	}

	return service.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       price,
	}, nil
}

// createProductHandler godoc
//
//	@Summary		Create product
//	@Description	Creates a product under an existing restaurant, available by default
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ProductRequest	true	"Product data"
//	@Success		201		{object}	domain.Product
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input.RestaurantID, err = parseObjectID(req.RestaurantID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.catalogService.Create(r.Context(), input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listProductsHandler godoc
//
//	@Summary	List all products
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	domain.Product
//	@Router		/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := app.catalogService.ListAll(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary	Get product by ID
//	@Tags		products
//	@Produce	json
//	@Param		product_id	path		string	true	"Product ID"
//	@Success	200			{object}	domain.Product
//	@Failure	404			{object}	map[string]string
//	@Router		/products/{product_id} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.catalogService.GetByID(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listProductsByRestaurantHandler godoc
//
//	@Summary	List products of a restaurant
//	@Tags		products
//	@Produce	json
//	@Param		restaurant_id	path	string	true	"Restaurant ID"
//	@Success	200				{array}	domain.Product
//	@Router		/products/by-restaurant/{restaurant_id} [get]
func (app *application) listProductsByRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	products, err := app.catalogService.ListByRestaurant(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listProductsByCategoryHandler godoc
//
//	@Summary	List products by category
//	@Tags		products
//	@Produce	json
//	@Param		category	path	string	true	"Category"
//	@Success	200			{array}	domain.Product
//	@Router		/products/by-category/{category} [get]
func (app *application) listProductsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		app.badRequestResponse(w, r, errors.New("category is required"))
		return
	}

	products, err := app.catalogService.ListByCategory(r.Context(), category)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// searchProductsHandler godoc
//
//	@Summary	Search products by name
//	@Tags		products
//	@Produce	json
//	@Param		name	query	string	true	"Name fragment"
//	@Success	200		{array}	domain.Product
//	@Router		/products/search [get]
func (app *application) searchProductsHandler(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("name")
	if fragment == "" {
		app.badRequestResponse(w, r, errors.New("name query parameter is required"))
		return
	}

	products, err := app.catalogService.SearchByName(r.Context(), fragment)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProductHandler godoc
//
//	@Summary	Update product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product_id	path		string			true	"Product ID"
//	@Param		request		body		ProductRequest	true	"Product data"
//	@Success	200			{object}	domain.Product
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/products/{product_id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req ProductRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.catalogService.Update(r.Context(), id, input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setProductAvailabilityHandler godoc
//
//	@Summary		Set product availability
//	@Description	Idempotent, setting the current value is a no-op
//	@Tags			products
//	@Param			product_id	path	string	true	"Product ID"
//	@Param			available	query	bool	true	"Availability flag"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{product_id}/availability [patch]
func (app *application) setProductAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var available bool
	switch r.URL.Query().Get("available") {
	case "true":
		available = true
	case "false":
		available = false
	default:
		app.badRequestResponse(w, r, errors.New("available query parameter must be true or false"))
		return
	}

	if err := app.catalogService.SetAvailability(r.Context(), id, available); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteProductHandler godoc
//
//	@Summary		Delete product
//	@Description	Hard delete, removes the record
//	@Tags			products
//	@Param			product_id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{product_id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.catalogService.Delete(r.Context(), id); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deactivateProductHandler godoc
//
//	@Summary		Deactivate product (soft delete)
//	@Description	Keeps the record for existing orders, marks it unavailable
//	@Tags			products
//	@Param			product_id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{product_id}/deactivate [delete]
func (app *application) deactivateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "product_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.catalogService.SoftDeactivate(r.Context(), id); err != nil {
		app.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
