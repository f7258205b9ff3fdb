package geocoderepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/geocoderepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GeocodeRepositoryIntegrationTestSuite verifies the persistent geocode cache
// tier against a real PostgreSQL database.
type GeocodeRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *geocoderepo.GormGeocodeRepository
	pune       ports.GeocodeEntry
}

func (suite *GeocodeRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(geocoderepo.Migrate(db))

	c, err := kernel.NewCoordinates(18.5204, 73.8567)
	suite.Require().NoError(err)
	suite.pune = ports.ResolvedEntry(c)
}

func (suite *GeocodeRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GeocodeRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE geocode_cache").Error)
	suite.repository = geocoderepo.NewGormGeocodeRepository(suite.db)
}

func (suite *GeocodeRepositoryIntegrationTestSuite) TestGet_Miss() {
	_, found, err := suite.repository.Get(context.Background(), "pune")

	suite.Require().NoError(err)
	suite.False(found)
}

func (suite *GeocodeRepositoryIntegrationTestSuite) TestPutThenGet() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Put(ctx, "pune", suite.pune))
	suite.Require().NoError(suite.repository.Put(ctx, "atlantis", ports.UnresolvedEntry()))

	got, found, err := suite.repository.Get(ctx, "pune")
	suite.Require().NoError(err)
	suite.True(found)
	suite.InDelta(18.5204, got.Coordinates.Lat(), 1e-9)
	suite.InDelta(73.8567, got.Coordinates.Lon(), 1e-9)

	unresolved, found, err := suite.repository.Get(ctx, "atlantis")
	suite.Require().NoError(err)
	suite.True(found)
	suite.False(unresolved.Resolved)
}

func (suite *GeocodeRepositoryIntegrationTestSuite) TestPut_Upserts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Put(ctx, "pune", ports.UnresolvedEntry()))
	suite.Require().NoError(suite.repository.Put(ctx, "pune", suite.pune))

	got, found, err := suite.repository.Get(ctx, "pune")

	suite.Require().NoError(err)
	suite.True(found)
	suite.True(got.Resolved)

	var count int64
	suite.Require().NoError(suite.db.Model(&geocoderepo.GeocodeDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *GeocodeRepositoryIntegrationTestSuite) TestGetMany() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Put(ctx, "pune", suite.pune))
	suite.Require().NoError(suite.repository.Put(ctx, "atlantis", ports.UnresolvedEntry()))

	got, err := suite.repository.GetMany(ctx, []string{"pune", "atlantis", "nowhere"})

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.True(got["pune"].Resolved)
	suite.False(got["atlantis"].Resolved)

	empty, err := suite.repository.GetMany(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *GeocodeRepositoryIntegrationTestSuite) TestReset() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Put(ctx, "pune", suite.pune))

	suite.Require().NoError(suite.repository.Reset(ctx))

	_, found, err := suite.repository.Get(ctx, "pune")
	suite.Require().NoError(err)
	suite.False(found)
}

func TestGeocodeRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(GeocodeRepositoryIntegrationTestSuite))
}
