package guard_test

import (
	"errors"
	"testing"

	"parcelhub/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("zone must be created via NewZone")

	t.Run("should pass for constructed guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return supplied error for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("should fall back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type zone struct {
		label string
		guard guard.ConstructorGuard
	}
	errZoneNotConstructed := errors.New("zone is not constructed")

	newZone := func(label string) (zone, error) {
		if label == "" {
			return zone{}, errors.New("label is required")
		}
		return zone{label: label, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should validate zone built by constructor", func(t *testing.T) {
		z, err := newZone("north")

		require.NoError(t, err)
		require.NoError(t, z.guard.Validate(errZoneNotConstructed))
	})

	t.Run("should reject literal zone", func(t *testing.T) {
		z := zone{label: "north"}

		require.ErrorIs(t, z.guard.Validate(errZoneNotConstructed), errZoneNotConstructed)
	})
}
