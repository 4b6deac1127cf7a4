package order

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

// Step is a state of the order workflow.
type Step int

const (
	StepSelectStore Step = iota
	StepSelectProduct
	StepSelectQuantity
	StepCommit
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSelectStore:
		return "select store"
	case StepSelectProduct:
		return "select product"
	case StepSelectQuantity:
		return "select quantity"
	case StepCommit:
		return "commit"
	case StepDone:
		return "done"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Workflow walks one customer through placing a single order. Invalid input
// keeps it in the current step; access denial and any commit failure end it.
type Workflow struct {
	service Service
	console Console

	step    Step
	store   *catalog.Store
	product *catalog.Product
	units   int
}

func NewWorkflow(service Service, console Console) *Workflow {
	return &Workflow{service: service, console: console}
}

// Step reports the state the workflow is in.
func (w *Workflow) Step() Step { return w.step }

// Run drives the workflow to StepDone and returns the placed order.
func (w *Workflow) Run(ctx context.Context, id auth.Identity) (*Order, error) {
	w.step = StepSelectStore
	for {
		switch w.step {
		case StepSelectStore:
			storeID, err := w.console.PromptInt("Enter store ID")
			if err != nil {
				return nil, err
			}
			store, err := w.service.SelectStore(ctx, id, storeID)
			if err != nil {
				if err := w.reprompt(err); err != nil {
					return nil, err
				}
				continue
			}
			w.store, w.step = store, StepSelectProduct

		case StepSelectProduct:
			name, err := w.console.Prompt("Enter product name")
			if err != nil {
				return nil, err
			}
			product, err := w.service.SelectProduct(ctx, id, w.store, name)
			if err != nil {
				if err := w.reprompt(err); err != nil {
					return nil, err
				}
				continue
			}
			w.product, w.step = product, StepSelectQuantity

		case StepSelectQuantity:
			units, err := w.console.PromptInt("Enter number of units")
			if err != nil {
				return nil, err
			}
			if err := w.service.SelectQuantity(ctx, id, w.product, int(units)); err != nil {
				if err := w.reprompt(err); err != nil {
					return nil, err
				}
				continue
			}
			w.units, w.step = int(units), StepCommit

		case StepCommit:
			o, err := w.service.Commit(ctx, id, w.store, w.product, w.units)
			if err != nil {
				return nil, fmt.Errorf("order failed: %w", err)
			}
			w.step = StepDone
			w.console.Writef("\tOrder for %d items of %s has been confirmed.", o.UnitsOrdered, o.ProductName)
			return o, nil

		default:
			return nil, fmt.Errorf("order workflow in unexpected %s step", w.step)
		}
	}
}

// reprompt reports a recoverable error and returns nil so the current step
// repeats. Any other error is returned unchanged.
func (w *Workflow) reprompt(err error) error {
	if !apperr.Recoverable(err) {
		return err
	}
	w.console.Writef("\t%v", err)
	return nil
}
