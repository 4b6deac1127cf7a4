// Package apptest wires every service over a seeded in-memory store for
// package tests.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/app"
	"github.com/georgemunganga/retail-ordering/internal/config"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
	"github.com/georgemunganga/retail-ordering/internal/session"
	"github.com/georgemunganga/retail-ordering/internal/storage/memory"
)

// Identities of the seeded accounts. The manager runs stores 1 and 2, the
// admin runs store 3. Stores 1 and 2 are within reach of every seeded
// account, store 3 is not.
var (
	Admin    = auth.Identity{Name: "admin"}
	Manager  = auth.Identity{Name: "manager"}
	Customer = auth.Identity{Name: "customer"}
	Stranger = auth.Identity{Name: "nobody"}
)

// Seeded ids.
const (
	AdminID    int64 = 1
	ManagerID  int64 = 2
	CustomerID int64 = 3

	DowntownID int64 = 1
	UptownID   int64 = 2
	LakesideID int64 = 3

	WarehouseID int64 = 1
)

// JWTSecret signs tokens issued by Fixture services.
const JWTSecret = "test-secret"

type Fixture struct {
	Store    *memory.Store
	Events   *events.Recorder
	Services session.Services
}

// New seeds a fresh store and builds services on top of it.
func New(t testing.TB) *Fixture {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.SeedDemo(context.Background()))

	rec := &events.Recorder{}
	cfg := &config.Config{Storage: config.StorageMemory, JWTSecret: JWTSecret, JWTTTL: time.Hour}
	return &Fixture{
		Store:    store,
		Events:   rec,
		Services: app.NewServices(app.MemoryRepositories(store), cfg, rec, zap.NewNop()),
	}
}

// Units returns the current unit count of a product.
func (f *Fixture) Units(t testing.TB, storeID int64, name string) int {
	t.Helper()
	p, err := f.Store.GetProduct(context.Background(), storeID, name)
	require.NoError(t, err)
	return p.Units
}

// Identity returns the identity for a seeded account name.
func Identity(name string) auth.Identity { return auth.Identity{Name: name} }
