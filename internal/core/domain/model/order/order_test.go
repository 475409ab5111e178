package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validLocation := kernel.MustNewLocation("NYC")
	createdAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

	t.Run("should create unassigned order", func(t *testing.T) {
		o, err := order.NewOrder(validID, validLocation, 2599, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, validLocation, o.Location())
		assert.Equal(t, int64(2599), o.Value())
		assert.Equal(t, order.Unassigned, o.Status())
		assert.True(t, o.IsUnassigned())
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
		assert.True(t, o.CreatedAt().Equal(createdAt))
	})

	t.Run("should accept zero value", func(t *testing.T) {
		_, err := order.NewOrder(validID, validLocation, 0, createdAt)

		require.NoError(t, err)
	})

	t.Run("should fail with negative value", func(t *testing.T) {
		o, err := order.NewOrder(validID, validLocation, -1, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "-1 is negative")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var invalidLocation kernel.Location

		o, err := order.NewOrder(invalidID, invalidLocation, -1, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "location must be created")
		assert.Contains(t, err.Error(), "value is invalid")
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore assigned order", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.MustNewLocation("BOS"), 100, time.Now(), order.Assigned)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.False(t, o.IsUnassigned())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.MustNewLocation("BOS"), 100, time.Now(), order.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should move unassigned order to assigned", func(t *testing.T) {
		o, _ := order.NewOrder(kernel.NewUUID(), kernel.MustNewLocation("NYC"), 10, time.Now())

		require.NoError(t, o.Assign())
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("should refuse to assign twice", func(t *testing.T) {
		o, _ := order.NewOrder(kernel.NewUUID(), kernel.MustNewLocation("NYC"), 10, time.Now())
		require.NoError(t, o.Assign())

		err := o.Assign()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "ASSIGNED is not a valid status to assign")
		assert.Equal(t, order.Assigned, o.Status())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for zero value and nil", func(t *testing.T) {
		var zero order.Order
		var nilOrder *order.Order

		require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, _ := order.NewOrder(id, kernel.MustNewLocation("NYC"), 1, time.Now())
	b, _ := order.NewOrder(id, kernel.MustNewLocation("BOS"), 2, time.Now())
	c, _ := order.NewOrder(kernel.NewUUID(), kernel.MustNewLocation("NYC"), 1, time.Now())

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
