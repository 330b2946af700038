package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand represents a request to register a courier under the
// username the identity layer knows them by. A new courier starts available.
//
// Example:
//
//	cmd, err := NewRegisterCourierCommand("alice")
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewRegisterCourierCommandHandler(uowFactory)
//	c, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to register courier: %w", err)
//	}
//	fmt.Printf("Registered courier with ID: %s", c.ID())
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	username  string

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand generates the courier id and validates the username.
func NewRegisterCourierCommand(username string) (RegisterCourierCommand, error) {
	command := RegisterCourierCommand{
		courierID: kernel.NewUUID(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := setCourierUsername(&command.username, username); err != nil {
		return RegisterCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

func (c RegisterCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c RegisterCourierCommand) Username() string {
	return c.username
}
