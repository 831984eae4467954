package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/shopspring/decimal"
)

func RestaurantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("name", "O nome do restaurante é obrigatório")
	}
	if utf8.RuneCountInString(name) > CustomerNameMax {
		return domain.NewValidationError("name", "O nome do restaurante deve ter no máximo 100 caracteres")
	}
	return nil
}

func RestaurantAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return domain.NewValidationError("address", "O endereço do restaurante é obrigatório")
	}
	if utf8.RuneCountInString(address) > AddressMax {
		return domain.NewValidationError("address", "O endereço deve ter no máximo 255 caracteres")
	}
	return nil
}

func DeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return domain.NewValidationError("delivery_fee", "A taxa de entrega não pode ser negativa")
	}
	return nil
}

func Restaurant(rest *domain.Restaurant) error {
	if err := RestaurantName(rest.Name); err != nil {
		return err
	}
	if err := RestaurantAddress(rest.Address); err != nil {
		return err
	}
	if err := CustomerPhone(rest.Phone); err != nil {
		return err
	}
	return DeliveryFee(rest.DeliveryFee)
}
