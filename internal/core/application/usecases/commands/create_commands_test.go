package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand(t *testing.T) {
	nyc := kernel.MustNewLocation("NYC")

	t.Run("valid", func(t *testing.T) {
		locations := []kernel.Location{nyc}
		cmd, err := commands.NewCreateCourierCommand("Alice", locations, 0)
		require.NoError(t, err)

		locations[0] = kernel.MustNewLocation("BOS")
		assert.NoError(t, cmd.Validate())
		assert.NoError(t, cmd.CourierID().Validate())
		assert.Equal(t, "Alice", cmd.Name())
		assert.Equal(t, []kernel.Location{nyc}, cmd.Locations())
		assert.Zero(t, cmd.DailyCapacity())
	})

	tests := []struct {
		name      string
		courier   string
		locations []kernel.Location
		capacity  int
		want      error
	}{
		{"empty name", "", []kernel.Location{nyc}, 1, commands.ErrNameIsRequired},
		{"no locations", "Alice", nil, 1, commands.ErrLocationsAreRequired},
		{"negative capacity", "Alice", []kernel.Location{nyc}, -1, commands.ErrDailyCapacityIsInvalid},
		{"zero location", "Alice", []kernel.Location{{}}, 1, kernel.ErrLocationIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateCourierCommand(tt.courier, tt.locations, tt.capacity)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("zero creation time defaults to now", func(t *testing.T) {
		before := time.Now()
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.MustNewLocation("NYC"), 0, time.Time{})
		require.NoError(t, err)

		assert.False(t, cmd.CreatedAt().Before(before))
	})

	t.Run("negative value", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.MustNewLocation("NYC"), -1, time.Now())
		require.ErrorIs(t, err, commands.ErrOrderValueIsInvalid)
	})

	t.Run("invalid references", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.Location{}, 10, time.Now())
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})

	t.Run("not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
