package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	base       time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
	suite.base = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAllAttributes() {
	ctx := context.Background()
	created := suite.addOrder("Downtown", 0)

	got, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)

	suite.True(created.IsEqual(got))
	suite.Equal("Downtown", got.Location().Name())
	suite.Equal(int64(2599), got.Value())
	suite.True(suite.base.Equal(got.CreatedAt()))
	suite.Equal(order.Unassigned, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsAssignedStatus() {
	ctx := context.Background()
	o := suite.addOrder("Downtown", 0)

	suite.Require().NoError(o.Assign())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustNewLocation("Downtown"), 10, suite.base)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetUnassigned_OldestFirstWithLimit() {
	ctx := context.Background()
	third := suite.addOrder("Uptown", 2*time.Minute)
	first := suite.addOrder("Downtown", 0)
	second := suite.addOrder("Downtown", time.Minute)

	assigned := suite.addOrder("Downtown", -time.Hour)
	suite.Require().NoError(assigned.Assign())
	suite.Require().NoError(suite.repository.Update(ctx, assigned))

	all, err := suite.repository.GetUnassigned(ctx, 10, nil)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{first.ID(), second.ID(), third.ID()}, ids(all))

	limited, err := suite.repository.GetUnassigned(ctx, 2, nil)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{first.ID(), second.ID()}, ids(limited))

	uptown := kernel.MustNewLocation("Uptown")
	filtered, err := suite.repository.GetUnassigned(ctx, 10, &uptown)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{third.ID()}, ids(filtered))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetUnassignedByIDs_SkipsAssignedAndUnknown() {
	ctx := context.Background()
	a := suite.addOrder("Downtown", time.Minute)
	b := suite.addOrder("Downtown", 0)
	done := suite.addOrder("Downtown", 2*time.Minute)
	suite.Require().NoError(done.Assign())
	suite.Require().NoError(suite.repository.Update(ctx, done))

	got, err := suite.repository.GetUnassignedByIDs(ctx, []kernel.UUID{a.ID(), done.ID(), kernel.NewUUID(), b.ID()})
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{b.ID(), a.ID()}, ids(got))

	empty, err := suite.repository.GetUnassignedByIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(location string, offset time.Duration) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustNewLocation(location), 2599, suite.base.Add(offset))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func ids(orders []*order.Order) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
