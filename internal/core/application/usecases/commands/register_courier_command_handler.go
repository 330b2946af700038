package commands

import (
	"context"
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/pkg/errs"
)

var ErrCourierAlreadyExists = errors.New("courier with this username already exists")

// RegisterCourierCommandHandler creates and persists new couriers.
//
// Example:
//
//	handler := NewRegisterCourierCommandHandler(uowFactory)
//	cmd, _ := NewRegisterCourierCommand("bob")
//
//	if _, err := handler.Handle(ctx, cmd); errors.Is(err, ErrCourierAlreadyExists) {
//	    return err
//	}
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle rejects a taken username with ErrCourierAlreadyExists. The store's
// unique constraint covers a concurrent registration of the same name.
func (h RegisterCourierCommandHandler) Handle(ctx context.Context, cmd RegisterCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	_, err := courierRepo.GetByUsername(ctx, cmd.Username())
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrCourierAlreadyExists, cmd.Username())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	courierEntity, err := courier.NewCourier(cmd.CourierID(), cmd.Username())
	if err != nil {
		return nil, err
	}

	if err = courierRepo.Add(ctx, courierEntity); err != nil {
		if errors.Is(err, errs.ErrObjectExists) {
			return nil, fmt.Errorf("%w: %w", ErrCourierAlreadyExists, err)
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return courierEntity, nil
}
