package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// storeContractSuite runs the same CRUD expectations against every ProductStore implementation.
type storeContractSuite struct {
	suite.Suite
	newStore func(t *testing.T) ProductStore // creates an empty, initialized store
	store    ProductStore
	ctx      context.Context
}

func (s *storeContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore(s.T())
}

func (s *storeContractSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// list is a helper returning decoded products.
func (s *storeContractSuite) list() []Product {
	s.T().Helper()
	records, err := s.store.ListAll(s.ctx)
	require.NoError(s.T(), err)
	return DecodeAll(records)
}

func (s *storeContractSuite) TestInitializeIsIdempotent() {
	require.NoError(s.T(), s.store.Initialize(s.ctx))
	require.NoError(s.T(), s.store.Initialize(s.ctx))
	s.Empty(s.list())
}

func (s *storeContractSuite) TestInsertAndList() {
	require.NoError(s.T(), s.store.Insert(s.ctx, "Apple", 2.5, 3))
	require.NoError(s.T(), s.store.Insert(s.ctx, "Banana", 1, 10))

	products := s.list()
	require.Len(s.T(), products, 2)
	// most recent first
	s.Equal("Banana", products[0].Name)
	s.Equal(1.0, products[0].Price)
	s.Equal(int64(10), products[0].Quantity)
	s.Equal("Apple", products[1].Name)
	s.Equal(2.5, products[1].Price)
	s.Equal(int64(3), products[1].Quantity)
	s.Greater(products[0].ID, products[1].ID)
}

func (s *storeContractSuite) TestUpdate() {
	require.NoError(s.T(), s.store.Insert(s.ctx, "Apple", 2.5, 3))
	original := s.list()[0]

	require.NoError(s.T(), s.store.Update(s.ctx, original.ID, "Green Apple", 3.75, 8))

	products := s.list()
	require.Len(s.T(), products, 1)
	s.Equal(Product{ID: original.ID, Name: "Green Apple", Price: 3.75, Quantity: 8}, products[0])
}

func (s *storeContractSuite) TestUpdateMissingID() {
	err := s.store.Update(s.ctx, 999, "Ghost", 1, 1)
	s.ErrorIs(err, perrors.ErrProductNotFound)
	s.Empty(s.list())
}

func (s *storeContractSuite) TestDelete() {
	require.NoError(s.T(), s.store.Insert(s.ctx, "Apple", 2.5, 3))
	require.NoError(s.T(), s.store.Insert(s.ctx, "Banana", 1, 10))
	products := s.list()

	require.NoError(s.T(), s.store.Delete(s.ctx, products[0].ID))

	remaining := s.list()
	require.Len(s.T(), remaining, 1)
	s.Equal(products[1], remaining[0])
}

func (s *storeContractSuite) TestLargeQuantity() {
	const quantity = int64(3_000_000_000)
	require.NoError(s.T(), s.store.Insert(s.ctx, "Bulk", 0.01, quantity))
	inserted := s.list()[0]
	s.Equal(quantity, inserted.Quantity)

	require.NoError(s.T(), s.store.Update(s.ctx, inserted.ID, "Bulk", 0.01, math.MaxInt64))
	s.Equal(int64(math.MaxInt64), s.list()[0].Quantity)
}

func (s *storeContractSuite) TestDeleteMissingID() {
	s.ErrorIs(s.store.Delete(s.ctx, 999), perrors.ErrProductNotFound)
}

func (s *storeContractSuite) TestIDsAreNeverReused() {
	require.NoError(s.T(), s.store.Insert(s.ctx, "first", 1, 1))
	require.NoError(s.T(), s.store.Insert(s.ctx, "second", 1, 1))
	last := s.list()[0]
	require.NoError(s.T(), s.store.Delete(s.ctx, last.ID))

	require.NoError(s.T(), s.store.Insert(s.ctx, "third", 1, 1))

	s.Greater(s.list()[0].ID, last.ID)
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &storeContractSuite{newStore: func(t *testing.T) ProductStore {
		return NewInMemoryStore()
	}})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &storeContractSuite{newStore: func(t *testing.T) ProductStore {
		t.Helper()
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "inventory.db"))
		require.NoError(t, err)
		require.NoError(t, s.Initialize(context.Background()))
		return s
	}})
}
