package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
)

func TestChangeValidate(t *testing.T) {
	base := Change{StoreID: 1, ProductName: "Widget"}
	with := func(mod func(*Change)) Change {
		c := base
		mod(&c)
		return c
	}

	tests := []struct {
		name    string
		change  Change
		wantErr bool
	}{
		{"decrement", with(func(c *Change) { c.Kind, c.Units = OrderDecrement, 3 }), false},
		{"zero decrement", with(func(c *Change) { c.Kind = OrderDecrement }), true},
		{"negative increment", with(func(c *Change) { c.Kind, c.Units = SupplyIncrement, -1 }), true},
		{"set units to zero", with(func(c *Change) { c.Kind, c.ActorID = UnitsSet, 2 }), false},
		{"set negative units", with(func(c *Change) { c.Kind, c.Units, c.ActorID = UnitsSet, -1, 2 }), true},
		{"negative price", with(func(c *Change) {
			c.Kind, c.Price, c.ActorID = PriceSet, decimal.NewFromInt(-1), 2
		}), true},
		{"audited without actor", with(func(c *Change) { c.Kind, c.Units = UnitsSet, 5 }), true},
		{"increment above column range", with(func(c *Change) { c.Kind, c.Units = SupplyIncrement, catalog.MaxUnits + 1 }), true},
		{"set units to ceiling", with(func(c *Change) { c.Kind, c.Units, c.ActorID = UnitsSet, catalog.MaxUnits, 2 }), false},
		{"no product", Change{StoreID: 1, Kind: SupplyIncrement, Units: 1}, true},
		{"unknown kind", with(func(c *Change) { c.Kind, c.Units = ChangeKind(9), 1 }), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangeAudit(t *testing.T) {
	assert.False(t, Change{Kind: OrderDecrement}.Audited())
	assert.False(t, Change{Kind: SupplyIncrement}.Audited())
	assert.Equal(t, FieldUnits, Change{Kind: UnitsSet}.Field())
	assert.Equal(t, FieldPrice, Change{Kind: PriceSet}.Field())
}

func TestUpdateProductRequestEdit(t *testing.T) {
	units := 4
	price := decimal.RequireFromString("1.25")

	e, err := UpdateProductRequest{Units: &units}.Edit()
	assert.NoError(t, err)
	assert.Equal(t, SetUnits(4), e)

	e, err = UpdateProductRequest{Price: &price}.Edit()
	assert.NoError(t, err)
	assert.Equal(t, PriceSet, e.kind)

	_, err = UpdateProductRequest{Units: &units, Price: &price}.Edit()
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = UpdateProductRequest{}.Edit()
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
