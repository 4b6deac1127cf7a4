package memory

import (
	"github.com/georgemunganga/retail-ordering/internal/modules/analytics"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

var (
	_ user.Repository      = (*Store)(nil)
	_ catalog.Repository   = (*Store)(nil)
	_ inventory.Repository = (*Store)(nil)
	_ order.Repository     = (*Store)(nil)
	_ supply.Repository    = (*Store)(nil)
	_ analytics.Repository = (*Store)(nil)
)
