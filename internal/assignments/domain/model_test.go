package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled}
	legal := map[[2]Status]bool{
		{StatusAssigned, StatusInProgress}:  true,
		{StatusAssigned, StatusCancelled}:   true,
		{StatusInProgress, StatusCompleted}: true,
		{StatusInProgress, StatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusAssigned.Terminal())
}

func TestOwnerMayTransition(t *testing.T) {
	assert.True(t, OwnerMayTransition(StatusAssigned, StatusInProgress))
	assert.True(t, OwnerMayTransition(StatusInProgress, StatusCompleted))
	assert.False(t, OwnerMayTransition(StatusAssigned, StatusCancelled))
	assert.False(t, OwnerMayTransition(StatusAssigned, StatusCompleted))
	assert.False(t, OwnerMayTransition(StatusCompleted, StatusInProgress))
}
