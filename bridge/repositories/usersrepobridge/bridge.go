// Package usersrepobridge exposes the user repository over HTTP.
package usersrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/tasmag/tasmag/bridge/scaffolding/errs"
	"github.com/tasmag/tasmag/core/repositories/usersrepo"
	"github.com/tasmag/tasmag/infrastructure/web"
	"github.com/tasmag/tasmag/sdk/logger"
	"github.com/tasmag/tasmag/sdk/validation"
)

type bridge struct {
	log            *logger.Logger
	userRepository *usersrepo.Repository
}

func newBridge(log *logger.Logger, userRepository *usersrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		userRepository: userRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	records, err := b.userRepository.List(ctx)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}
	return web.NewJSONResponse(MarshalListToBridge(records))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := validation.ParseID(web.Param(r, "id"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	record, err := b.userRepository.GetByID(ctx, id)
	if err != nil {
		return repositoryError(err)
	}
	return web.NewJSONResponse(MarshalToBridge(record))
}

func (b *bridge) httpGetByEmail(ctx context.Context, r *http.Request) web.Encoder {
	email := web.Param(r, "email")
	if email == "" {
		return errs.Newf(errs.InvalidArgument, "email is required")
	}

	record, err := b.userRepository.GetByEmail(ctx, email)
	if err != nil {
		return repositoryError(err)
	}
	return web.NewJSONResponse(MarshalToBridge(record))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input UserInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	record, err := b.userRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}
	return web.NewJSONResponseWithStatus(MarshalToBridge(record), http.StatusCreated)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := validation.ParseID(web.Param(r, "id"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.userRepository.Delete(ctx, id); err != nil {
		return repositoryError(err)
	}
	return web.NewNoContent()
}

func repositoryError(err error) *errs.Error {
	if usersrepo.IsNotFound(err) {
		return errs.New(errs.NotFound, errors.New("user not found"))
	}
	return errs.New(errs.InternalOnlyLog, err)
}
