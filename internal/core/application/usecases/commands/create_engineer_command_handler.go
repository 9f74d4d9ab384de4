package commands

import (
	"context"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/ports"
)

// CreateEngineerCommandHandler handles the business logic for engineer
// registration.
type CreateEngineerCommandHandler struct {
	uowFactory EngineerUoWFactory
	authorizer ports.Authorizer
}

// NewCreateEngineerCommandHandler creates a handler for engineer creation
// operations.
func NewCreateEngineerCommandHandler(
	uowFactory EngineerUoWFactory,
	authorizer ports.Authorizer,
) CreateEngineerCommandHandler {
	return CreateEngineerCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the engineer creation command.
func (h CreateEngineerCommandHandler) Handle(
	ctx context.Context,
	cmd CreateEngineerCommand,
) (*engineer.Engineer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorizer.Authorize(cmd.Actor(), ports.ActionCreateEng); err != nil {
		return nil, err
	}

	newEngineer, err := engineer.NewEngineer(
		cmd.EngineerID(),
		cmd.Actor().AgencyID,
		cmd.Name(),
		cmd.Phone(),
		cmd.Skill(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.EngineerRepository().Add(ctx, newEngineer); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newEngineer, nil
}
