package main

import (
	"errors"
	"net/http"

	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
	"github.com/shopspring/decimal"
)

type RestaurantRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Category    string `json:"category" validate:"max=50"`
	Address     string `json:"address" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"required,numeric,min=10,max=11"`
	DeliveryFee string `json:"delivery_fee" validate:"required"`
}

func (req RestaurantRequest) toInput() (service.RestaurantInput, error) {
	fee, err := decimal.NewFromString(req.DeliveryFee)
	if err != nil {
		return service.RestaurantInput{}, errors.New("delivery_fee must be a decimal number")
	}

	return service.RestaurantInput{
		Name:        req.Name,
		Category:    req.Category,
		Address:     req.Address,
		Phone:       req.Phone,
		DeliveryFee: fee,
	}, nil
}

// createRestaurantHandler godoc
//
//	@Summary	Create restaurant
//	@Tags		restaurants
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RestaurantRequest	true	"Restaurant data"
//	@Success	201		{object}	domain.Restaurant
//	@Failure	400		{object}	map[string]string
//	@Router		/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req RestaurantRequest
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

	restaurant, err := app.restaurantService.Create(r.Context(), input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantsHandler godoc
//
//	@Summary	List restaurants
//	@Tags		restaurants
//	@Produce	json
//	@Success	200	{array}	domain.Restaurant
//	@Router		/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, err := app.restaurantService.List(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary	Get restaurant by ID
//	@Tags		restaurants
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantService.GetByID(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary	Update restaurant
//	@Tags		restaurants
//	@Accept		json
//	@Produce	json
//	@Param		restaurant_id	path		string				true	"Restaurant ID"
//	@Param		request			body		RestaurantRequest	true	"Restaurant data"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	400				{object}	map[string]string
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id} [put]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req RestaurantRequest
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

	restaurant, err := app.restaurantService.Update(r.Context(), id, input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// toggleRestaurantStatusHandler godoc
//
//	@Summary	Toggle restaurant active flag
//	@Tags		restaurants
//	@Produce	json
//	@Param		restaurant_id	path		string	true	"Restaurant ID"
//	@Success	200				{object}	domain.Restaurant
//	@Failure	404				{object}	map[string]string
//	@Router		/restaurants/{restaurant_id}/status [patch]
func (app *application) toggleRestaurantStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.objectIDParam(r, "restaurant_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantService.ToggleActive(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}
