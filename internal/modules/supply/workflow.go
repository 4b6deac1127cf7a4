package supply

import (
	"context"
	"fmt"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
)

// Console is the line I/O the interactive workflow prompts through.
type Console interface {
	Prompt(label string) (string, error)
	PromptInt(label string) (int64, error)
	WriteLine(s string)
	Writef(format string, args ...any)
}

// Workflow collects a supply request field by field: owned store, product,
// units, warehouse. A store the manager does not own ends the workflow.
type Workflow struct {
	service Service
	console Console
}

func NewWorkflow(service Service, console Console) *Workflow {
	return &Workflow{service: service, console: console}
}

func (w *Workflow) Run(ctx context.Context, id auth.Identity) (*Request, error) {
	var (
		store   *catalog.Store
		product *catalog.Product
		units   int
		err     error
	)

	for store == nil {
		storeID, perr := w.console.PromptInt("Enter store ID")
		if perr != nil {
			return nil, perr
		}
		if store, err = w.service.SelectStore(ctx, id, storeID); err != nil {
			if err := w.reprompt(err); err != nil {
				return nil, err
			}
		}
	}

	for product == nil {
		name, perr := w.console.Prompt("Enter product name")
		if perr != nil {
			return nil, perr
		}
		if product, err = w.service.SelectProduct(ctx, id, store, name); err != nil {
			if err := w.reprompt(err); err != nil {
				return nil, err
			}
		}
	}

	for units == 0 {
		n, perr := w.console.PromptInt("Enter units")
		if perr != nil {
			return nil, perr
		}
		if err := ValidateUnits(int(n)); err != nil {
			w.console.Writef("\t%v", err)
			continue
		}
		units = int(n)
	}

	var warehouse *catalog.Warehouse
	for warehouse == nil {
		warehouseID, perr := w.console.PromptInt("Enter warehouse ID")
		if perr != nil {
			return nil, perr
		}
		if warehouse, err = w.service.SelectWarehouse(ctx, id, warehouseID); err != nil {
			if err := w.reprompt(err); err != nil {
				return nil, err
			}
		}
	}

	r, p, err := w.service.Submit(ctx, id, SubmitRequest{
		StoreID:     store.ID,
		ProductName: product.Name,
		Units:       units,
		WarehouseID: warehouse.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("supply request failed: %w", err)
	}
	w.console.Writef("\tRequest placed. %s at store %d now has %d units.", p.Name, p.StoreID, p.Units)
	return r, nil
}

func (w *Workflow) reprompt(err error) error {
	if !apperr.Recoverable(err) {
		return err
	}
	w.console.Writef("\t%v", err)
	return nil
}
