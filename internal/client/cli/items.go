package cli

import (
	"context"

	"itemvault/internal/client/models"
)

func (a *App) doAdd(ctx context.Context, name, description string) int {
	draft := models.Draft{Name: name, Description: description}
	if err := draft.Validate(); err != nil {
		fail(a.errOut, err.Error())
		return 2
	}

	item, err := a.client.CreateItem(ctx, draft)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	ok(a.out, "created "+item.ID)
	return 0
}

func (a *App) doEdit(ctx context.Context, id, name, description string) int {
	draft := models.Draft{Name: name, Description: description}
	if err := draft.Validate(); err != nil {
		fail(a.errOut, err.Error())
		return 2
	}

	item, err := a.client.UpdateItem(ctx, id, draft)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	ok(a.out, "updated "+item.ID)
	return 0
}

func (a *App) doRemove(ctx context.Context, id string) int {
	yes, err := confirm(a.reader, "Delete item "+id+"?", a.out)
	if err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	if !yes {
		fail(a.errOut, "aborted")
		return 1
	}

	if err := a.client.DeleteItem(ctx, id); err != nil {
		fail(a.errOut, err.Error())
		return 1
	}
	ok(a.out, "deleted "+id)
	return 0
}
