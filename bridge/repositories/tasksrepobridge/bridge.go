package tasksrepobridge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tasmag/tasmag/bridge/scaffolding/errs"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/infrastructure/web"
	"github.com/tasmag/tasmag/sdk/validation"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	var (
		records []tasksrepo.Task
		err     error
	)

	if term := web.QueryParam(r, "searchTerm"); term != "" {
		records, err = b.tasksRepository.SearchByName(ctx, term)
	} else {
		records, err = b.tasksRepository.List(ctx)
	}
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

	record, err := b.tasksRepository.GetByID(ctx, id)
	if err != nil {
		return repositoryError(id, err)
	}

	return web.NewJSONResponse(MarshalToBridge(record))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	record, err := b.tasksRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(record), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, err := validation.ParseID(web.Param(r, "id"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	var input TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	record, err := b.tasksRepository.Update(ctx, id, MarshalUpdateToRepository(input))
	if err != nil {
		return repositoryError(id, err)
	}

	return web.NewJSONResponse(MarshalToBridge(record))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := validation.ParseID(web.Param(r, "id"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.tasksRepository.Delete(ctx, id); err != nil {
		return repositoryError(id, err)
	}

	return web.NewNoContent()
}

func repositoryError(id int64, err error) *errs.Error {
	if tasksrepo.IsNotFound(err) {
		return errs.New(errs.NotFound, fmt.Errorf("task %d not found", id))
	}
	return errs.New(errs.InternalOnlyLog, err)
}
