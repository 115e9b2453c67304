package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// SubmitInquiryCommandHandler creates a NEW_INQUIRY order after checking that
// the client and every product exist and are active.
type SubmitInquiryCommandHandler struct {
	uowFactory CatalogOrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewSubmitInquiryCommandHandler creates a handler whose unit of work exposes
// both orders and the catalog.
func NewSubmitInquiryCommandHandler(
	uowFactory CatalogOrderUoWFactory,
	lifecycle order.Lifecycle,
) SubmitInquiryCommandHandler {
	return SubmitInquiryCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle validates references, creates the order through Lifecycle.SubmitInquiry
// and adds it in one transaction. An existing id fails with ConcurrentModification.
func (h SubmitInquiryCommandHandler) Handle(ctx context.Context, cmd SubmitInquiryCommand) error {
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

	catalog := uow.CatalogRepository()
	if err := checkClient(ctx, catalog, cmd.ClientRef()); err != nil {
		return err
	}
	if err := checkProducts(ctx, catalog, productRefs(cmd.Items())); err != nil {
		return err
	}

	o, err := h.lifecycle.SubmitInquiry(cmd.OrderID(), cmd.ClientRef(), cmd.Items())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func checkClient(ctx context.Context, catalog ports.CatalogRepository, clientRef kernel.UUID) error {
	exists, err := catalog.ClientExists(ctx, clientRef)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("client", clientRef)
	}
	return nil
}

func checkProducts(ctx context.Context, catalog ports.CatalogRepository, refs []kernel.UUID) error {
	missing, err := catalog.MissingProducts(ctx, refs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errs.NewObjectNotFoundErrorWithCause("product", missing[0],
			fmt.Errorf("%d of %d products are unknown or inactive", len(missing), len(refs)))
	}
	return nil
}
