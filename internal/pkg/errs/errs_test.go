package errs_test

import (
	"errors"
	"testing"

	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("should format id without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("parcel", "p-1")

		assert.Equal(t, "parcel", err.ParamName)
		assert.Equal(t, "p-1", err.ID)
		assert.NoError(t, err.Cause)
		assert.Equal(t, "object not found: p-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("should include param and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("courier", "alice", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: courier, ID is: alice (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("should format param name", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("zone")

		assert.Equal(t, "value is invalid: zone", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("should append cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("unknown value"))

		assert.Equal(t, "value is invalid: status (cause: unknown value)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("should describe bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

		assert.Equal(t, 91.5, err.Value)
		assert.Equal(t, -90, err.Min)
		assert.Equal(t, 90, err.Max)
		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("should append cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("weight", -1, 0, 1000, errors.New("negative"))

		assert.Equal(t,
			"value is invalid: -1 is weight, min value is 0, max value is 1000 (cause: negative)",
			err.Error())
	})

	t.Run("should flatten multi-line values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "line one\nline two", 0, 10)

		assert.Contains(t, err.Error(), "line one line two")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("should format param name", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("should append cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredErrorWithCause("username", errors.New("empty header"))

		assert.Equal(t, "value is required: username (cause: empty header)", err.Error())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("should format param name", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("parcel")

		assert.Equal(t, "version is invalid: parcel", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("should append cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("courier", errors.New("0 rows affected"))

		assert.Equal(t, "version is invalid: courier (cause: 0 rows affected)", err.Error())
	})
}

func TestErrorsCanBeMatched(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("parcel", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("zone"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("lat", 100, -90, 90), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("username"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewVersionIsInvalidError("parcel"), errs.ErrVersionIsInvalid)

	var notFound *errs.ObjectNotFoundError
	wrapped := errors.Join(errors.New("loading"), errs.NewObjectNotFoundError("courier", "bob"))
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "courier", notFound.ParamName)
}
