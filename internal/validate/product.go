package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/shopspring/decimal"
)

func ProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "O nome do produto é obrigatório")
	}
	if utf8.RuneCountInString(name) > 100 {
		return domain.NewValidationError("name", "O nome do produto deve ter no máximo 100 caracteres")
	}
	return nil
}

func ProductPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError("price", "O preço não pode ser negativo")
	}
	return nil
}

func ItemQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "A quantidade deve ser maior que zero")
	}
	return nil
}

func Product(p *domain.Product) error {
	if err := ProductName(p.Name); err != nil {
		return err
	}
	return ProductPrice(p.Price)
}
