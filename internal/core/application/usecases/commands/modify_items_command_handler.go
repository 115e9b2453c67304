package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// ModifyItemsCommandHandler checks the new products against the catalog and
// applies Lifecycle.ModifyItems.
type ModifyItemsCommandHandler struct {
	uowFactory CatalogOrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewModifyItemsCommandHandler creates a handler whose unit of work also
// exposes the catalog for product checks.
func NewModifyItemsCommandHandler(
	uowFactory CatalogOrderUoWFactory,
	lifecycle order.Lifecycle,
) ModifyItemsCommandHandler {
	return ModifyItemsCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle rejects unknown or inactive products with NotFound, then replaces
// the items. Outside NEW_INQUIRY the order returns to PENDING_PRICING.
func (h ModifyItemsCommandHandler) Handle(ctx context.Context, cmd ModifyItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = checkProducts(ctx, uow.CatalogRepository(), productRefs(cmd.Items())); err != nil {
		return err
	}

	if err = h.lifecycle.ModifyItems(o, cmd.Items(), cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
