package service

import (
	"context"
	"testing"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newCustomerService(repo *fakeCustomerRepo) *CustomerService {
	return NewCustomerService(repo, newFakeBroker(), zap.NewNop().Sugar())
}

func validCustomerInput() CustomerInput {
	return CustomerInput{
		Name:    "Maria Oliveira",
		Phone:   "11999998888",
		Email:   "maria@x.com",
		Address: "Rua A, 100",
	}
}

func TestRegisterAssignsIDAndActivates(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())

	customer, err := svc.Register(context.Background(), validCustomerInput())

	require.NoError(t, err)
	assert.False(t, customer.ID.IsZero())
	assert.True(t, customer.Active)
	assert.Equal(t, "maria@x.com", customer.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	input := validCustomerInput()
	input.Name = "Outra Pessoa"
	_, err = svc.Register(ctx, input)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email já cadastrado", ve.Message)
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	input := validCustomerInput()
	input.Email = "MARIA@X.COM"
	_, err = svc.Register(ctx, input)

	assert.True(t, domain.IsValidation(err))
}

func TestRegisterRejectsInvalidFields(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())

	tests := []struct {
		name      string
		mutate    func(*CustomerInput)
		wantField string
	}{
		{"short name", func(in *CustomerInput) { in.Name = "A" }, "name"},
		{"bad phone", func(in *CustomerInput) { in.Phone = "123" }, "phone"},
		{"bad email", func(in *CustomerInput) { in.Email = "not-an-email" }, "email"},
		{"blank address", func(in *CustomerInput) { in.Address = "  " }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCustomerInput()
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestSearchByNameIsCaseInsensitive(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	found, err := svc.SearchByName(ctx, "maria")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Maria Oliveira", found[0].Name)

	found, err = svc.SearchByName(ctx, "MARIA")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestUpdateWithoutEmailChangeSkipsUniquenessCheck(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newCustomerService(repo)
	ctx := context.Background()

	customer, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	// same email: must not collide with itself
	input := validCustomerInput()
	input.Name = "Maria O. Santos"

	updated, err := svc.Update(ctx, customer.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Maria O. Santos", updated.Name)
	assert.Equal(t, customer.Email, updated.Email)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	first, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	other := validCustomerInput()
	other.Name = "João Pereira"
	other.Email = "joao@x.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	input := validCustomerInput()
	input.Email = "joao@x.com"
	_, err = svc.Update(ctx, first.ID, input)

	assert.True(t, domain.IsValidation(err))
}

func TestUpdateNotFound(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), validCustomerInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeactivateIsNotIdempotent(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	customer, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, customer.ID))

	// second deactivation is a business error, not a no-op
	err = svc.Deactivate(ctx, customer.ID)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "já está inativo")
}

func TestToggleActiveFlipsEveryCall(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	customer, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	toggled, err := svc.ToggleActive(ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = svc.ToggleActive(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestListActiveExcludesDeactivated(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	maria, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)

	other := validCustomerInput()
	other.Name = "João Pereira"
	other.Email = "joao@x.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, maria.ID))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "João Pereira", active[0].Name)
}

// full scenario: register, duplicate rejection, search, double deactivate
func TestCustomerLifecycleScenario(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	customer, err := svc.Register(ctx, validCustomerInput())
	require.NoError(t, err)
	assert.True(t, customer.Active)

	_, err = svc.Register(ctx, validCustomerInput())
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email já cadastrado", ve.Message)

	found, err := svc.SearchByName(ctx, "maria")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, svc.Deactivate(ctx, customer.ID))
	assert.Error(t, svc.Deactivate(ctx, customer.ID))
}
