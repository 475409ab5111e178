package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nyc = kernel.MustNewLocation("NYC")
	bos = kernel.MustNewLocation("BOS")
)

func TestNewCourier(t *testing.T) {
	t.Run("should create active courier with empty load", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, " Alice ", []kernel.Location{nyc, bos}, 3)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, 3, c.DailyCapacity())
		assert.Equal(t, 0, c.CurrentAssignedCount())
		assert.Equal(t, 3, c.AvailableCapacity())
		assert.True(t, c.IsActive())
		assert.Equal(t, []kernel.Location{nyc, bos}, c.ServiceableLocations())
	})

	t.Run("should drop duplicate locations", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Bob", []kernel.Location{nyc, nyc, bos, nyc}, 1)

		require.NoError(t, err)
		assert.Equal(t, []kernel.Location{nyc, bos}, c.ServiceableLocations())
	})

	t.Run("should allow zero capacity", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Idle", []kernel.Location{nyc}, 0)

		require.NoError(t, err)
		assert.False(t, c.IsEligibleFor(nyc))
	})

	t.Run("should join validation errors", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.UUID{}, "", nil, -1)

		require.Error(t, err)
		assert.Nil(t, c)
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
		require.ErrorIs(t, err, courier.ErrLocationsAreRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "dailyCapacity")
	})

	t.Run("should reject unconstructed location", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "Eve", []kernel.Location{{}}, 1)

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("should restore counters and inactive flag", func(t *testing.T) {
		c, err := courier.RestoreCourier(kernel.NewUUID(), "Carol", []kernel.Location{nyc}, 5, 4, false)

		require.NoError(t, err)
		assert.Equal(t, 4, c.CurrentAssignedCount())
		assert.Equal(t, 1, c.AvailableCapacity())
		assert.False(t, c.IsActive())
	})

	t.Run("should reject load above capacity", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), "Carol", []kernel.Location{nyc}, 2, 3, true)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative load", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), "Carol", []kernel.Location{nyc}, 2, -1, true)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCourier_IsEligibleFor(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		load     int
		active   bool
		location kernel.Location
		expected bool
	}{
		{"active with spare capacity", 2, 1, true, nyc, true},
		{"full", 2, 2, true, nyc, false},
		{"inactive", 2, 0, false, nyc, false},
		{"not serving location", 2, 0, true, kernel.MustNewLocation("SFO"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := courier.RestoreCourier(kernel.NewUUID(), "Dan", []kernel.Location{nyc, bos}, tt.capacity, tt.load, tt.active)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, c.IsEligibleFor(tt.location))
		})
	}
}

func TestCourier_Reserve(t *testing.T) {
	t.Run("should claim capacity until exhausted", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Frank", []kernel.Location{nyc}, 2)

		require.NoError(t, c.Reserve())
		require.NoError(t, c.Reserve())
		require.ErrorIs(t, c.Reserve(), courier.ErrCapacityExhausted)

		assert.Equal(t, 2, c.CurrentAssignedCount())
		assert.Equal(t, 0, c.AvailableCapacity())
	})

	t.Run("should refuse inactive courier", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Gina", []kernel.Location{nyc}, 2)
		c.Deactivate()

		require.ErrorIs(t, c.Reserve(), courier.ErrCourierIsInactive)
		assert.Equal(t, 0, c.CurrentAssignedCount())

		c.Activate()
		require.NoError(t, c.Reserve())
	})
}

func TestCourier_ServiceableLocationsIsACopy(t *testing.T) {
	c, _ := courier.NewCourier(kernel.NewUUID(), "Hank", []kernel.Location{nyc}, 1)

	locs := c.ServiceableLocations()
	locs[0] = bos

	assert.True(t, c.CanServe(nyc))
	assert.False(t, c.CanServe(bos))
}

func TestCourier_Validate(t *testing.T) {
	var zero courier.Courier
	var nilCourier *courier.Courier

	require.ErrorIs(t, zero.Validate(), courier.ErrCourierIsNotConstructed)
	require.ErrorIs(t, nilCourier.Validate(), courier.ErrCourierIsNotConstructed)
}
