package order_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retail-ordering/internal/app/apptest"
	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/platform/terminal"
)

func TestWorkflow_RepromptsWithinStep(t *testing.T) {
	f := apptest.New(t)
	var out bytes.Buffer
	// Far store, then a real one; unknown product, then Widget; zero and
	// too many units, then four.
	input := strings.Join([]string{"3", "1", "Bogus", "Widget", "0", "20", "4"}, "\n") + "\n"
	wf := order.NewWorkflow(f.Services.Orders, terminal.New(strings.NewReader(input), &out))

	o, err := wf.Run(context.Background(), apptest.Customer)
	require.NoError(t, err)
	assert.Equal(t, order.StepDone, wf.Step())
	assert.Equal(t, "Widget", o.ProductName)
	assert.Equal(t, 6, f.Units(t, apptest.DowntownID, "Widget"))
	assert.Contains(t, out.String(), "Order for 4 items of Widget has been confirmed.")
	assert.Contains(t, out.String(), "not within")
	assert.Equal(t, 2, strings.Count(out.String(), apperr.ErrInsufficientStock.Error()))
}

func TestWorkflow_AccessDeniedEndsWorkflow(t *testing.T) {
	f := apptest.New(t)
	wf := order.NewWorkflow(f.Services.Orders, terminal.New(strings.NewReader("1\n"), &bytes.Buffer{}))

	_, err := wf.Run(context.Background(), apptest.Stranger)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	assert.Equal(t, order.StepSelectStore, wf.Step())
	assert.Empty(t, f.Store.Orders())
}

func TestWorkflow_InputClosed(t *testing.T) {
	f := apptest.New(t)
	wf := order.NewWorkflow(f.Services.Orders, terminal.New(strings.NewReader("1\nWidget\n"), &bytes.Buffer{}))

	_, err := wf.Run(context.Background(), apptest.Customer)
	assert.ErrorIs(t, err, terminal.ErrClosed)
	assert.Equal(t, order.StepSelectQuantity, wf.Step())
	assert.Equal(t, 10, f.Units(t, apptest.DowntownID, "Widget"))
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "select quantity", order.StepSelectQuantity.String())
	assert.Equal(t, "step(42)", order.Step(42).String())
}

// racingConsole lets a competing order drain stock right before the
// quantity answer is read, after the product snapshot was taken.
type racingConsole struct {
	*terminal.Terminal
	race func()
}

func (c *racingConsole) PromptInt(label string) (int64, error) {
	if label == "Enter number of units" && c.race != nil {
		c.race()
		c.race = nil
	}
	return c.Terminal.PromptInt(label)
}

func TestWorkflow_LostRaceAbortsOrder(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()
	console := &racingConsole{
		Terminal: terminal.New(strings.NewReader("1\nWidget\n5\n"), &bytes.Buffer{}),
		race: func() {
			_, err := f.Services.Orders.Place(ctx, apptest.Manager, order.PlaceOrderRequest{
				StoreID: apptest.DowntownID, ProductName: "Widget", Units: 8,
			})
			require.NoError(t, err)
		},
	}
	wf := order.NewWorkflow(f.Services.Orders, console)

	_, err := wf.Run(ctx, apptest.Customer)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, order.StepCommit, wf.Step())
	assert.Equal(t, 2, f.Units(t, apptest.DowntownID, "Widget"))
	assert.Len(t, f.Store.Orders(), 1)
}
