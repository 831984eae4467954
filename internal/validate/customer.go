// Package validate holds the authoritative business validation rules,
// applied by the services before every persist. The DTO struct tags in
// cmd/api mirror these bounds but these functions are the source of truth.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
)

const (
	CustomerNameMin  = 2
	CustomerNameMax  = 100
	CustomerEmailMax = 150
	AddressMax       = 255
)

func CustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("name", "O nome do cliente é obrigatório")
	}
	// bounds count characters, not bytes; accented names must not shrink
	if utf8.RuneCountInString(name) < CustomerNameMin {
		return domain.NewValidationError("name", "O nome deve ter pelo menos 2 caracteres")
	}
	if utf8.RuneCountInString(name) > CustomerNameMax {
		return domain.NewValidationError("name", "O nome deve ter no máximo 100 caracteres")
	}
	return nil
}

func CustomerPhone(phone string) error {
	if phone == "" {
		return domain.NewValidationError("phone", "O telefone do cliente é obrigatório")
	}
	if len(phone) < 10 || len(phone) > 11 {
		return domain.NewValidationError("phone", "O telefone deve ter de 10 a 11 dígitos")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return domain.NewValidationError("phone", "O telefone deve conter apenas dígitos")
		}
	}
	return nil
}

func CustomerEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("email", "O email do cliente é obrigatório")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return domain.NewValidationError("email", "O email possui formato inválido")
	}
	if utf8.RuneCountInString(email) > CustomerEmailMax {
		return domain.NewValidationError("email", "O email deve ter no máximo 150 caracteres")
	}
	return nil
}

func CustomerAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return domain.NewValidationError("address", "O endereço do cliente é obrigatório")
	}
	if utf8.RuneCountInString(address) > AddressMax {
		return domain.NewValidationError("address", "O endereço deve ter no máximo 255 caracteres")
	}
	return nil
}

// Customer runs every customer field rule, first failure wins.
func Customer(c *domain.Customer) error {
	if err := CustomerName(c.Name); err != nil {
		return err
	}
	if err := CustomerPhone(c.Phone); err != nil {
		return err
	}
	if err := CustomerEmail(c.Email); err != nil {
		return err
	}
	return CustomerAddress(c.Address)
}
