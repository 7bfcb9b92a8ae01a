package statemachine

import (
	"testing"

	"restaurant-admin/models"

	"github.com/stretchr/testify/assert"
)

func TestPermissiveAcceptsAnyKnownStatus(t *testing.T) {
	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			assert.NoError(t, Permissive.CanTransition(from, to), "%s → %s", from, to)
		}
	}
	assert.Error(t, Permissive.CanTransition(models.StatusOrdered, "cancelled"))
}

func TestForwardPolicy(t *testing.T) {
	assert.NoError(t, Forward.CanTransition(models.StatusOrdered, models.StatusInProcess))
	assert.NoError(t, Forward.CanTransition(models.StatusOrdered, models.StatusDelivered))
	assert.NoError(t, Forward.CanTransition(models.StatusInProcess, models.StatusDelivered))
	assert.NoError(t, Forward.CanTransition(models.StatusDelivered, models.StatusDelivered))

	err := Forward.CanTransition(models.StatusDelivered, models.StatusOrdered)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "none (terminal state)")
	}
	assert.Error(t, Forward.CanTransition(models.StatusInProcess, models.StatusOrdered))
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.Equal(t,
		[]models.OrderStatus{models.StatusInProcess, models.StatusDelivered},
		Forward.ValidTransitionsFrom(models.StatusOrdered))
	assert.Empty(t, Forward.ValidTransitionsFrom(models.StatusDelivered))
	assert.Equal(t, models.OrderStatuses, Permissive.ValidTransitionsFrom(models.StatusDelivered))
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, Forward, ParsePolicy(true))
	assert.Equal(t, Permissive, ParsePolicy(false))
}
