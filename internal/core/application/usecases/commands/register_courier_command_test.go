package commands_test

import (
	"strings"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterCourierCommand_ValidInput(t *testing.T) {
	// Act
	cmd, err := commands.NewRegisterCourierCommand("  alice ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", cmd.Username())
	require.NoError(t, cmd.CourierID().Validate())
	assert.NoError(t, cmd.Validate())
}

func TestNewRegisterCourierCommand_InvalidUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		target   error
	}{
		{name: "empty", username: "", target: errs.ErrValueIsRequired},
		{name: "blank", username: "   ", target: errs.ErrValueIsRequired},
		{name: "too long", username: strings.Repeat("a", courier.UsernameMaxLength+1), target: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewRegisterCourierCommand(tc.username)
			require.ErrorIs(t, err, tc.target)
		})
	}
}

func TestNewRegisterCourierCommand_GeneratesUniqueIDs(t *testing.T) {
	first, err := commands.NewRegisterCourierCommand("alice")
	require.NoError(t, err)
	second, err := commands.NewRegisterCourierCommand("alice")
	require.NoError(t, err)

	assert.NotEqual(t, first.CourierID(), second.CourierID())
}

func TestRegisterCourierCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.RegisterCourierCommand

	err := cmd.Validate()

	require.ErrorIs(t, err, commands.ErrRegisterCourierCommandIsNotConstructed)
	assert.Equal(t,
		"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
		err.Error(),
	)
}
