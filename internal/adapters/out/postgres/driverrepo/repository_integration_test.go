package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/driver"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DriverRepositoryIntegrationTestSuite verifies driver reads, including the
// profiles fallback, against a real PostgreSQL database.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(driverrepo.Migrate(db))
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers, profiles").Error)
	suite.repository = driverrepo.NewGormDriverRepository(suite.db)
}

func ptr(s string) *string { return &s }

func (suite *DriverRepositoryIntegrationTestSuite) TestListDrivers_FromDriversTable() {
	id := uuid.New()
	suite.Require().NoError(suite.db.Create(&driverrepo.DriverDTO{
		ID: id, FullName: ptr("Asha Patil"), Name: ptr("asha"), Phone: ptr("123"),
		City: ptr("Pune"), Address: ptr("Baner Road"),
	}).Error)
	suite.Require().NoError(suite.db.Create(&driverrepo.ProfileDTO{ID: uuid.New(), Name: ptr("ignored")}).Error)

	drivers, err := suite.repository.ListDrivers(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(drivers, 1)
	d := drivers[0]
	suite.Equal(id, d.ID().Bytes())
	suite.Equal("Asha Patil", d.Name())
	suite.Equal(driver.Contact{Phone: "123", City: "Pune", Address: "Baner Road"}, d.Contact())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestListDrivers_FallsBackToProfiles() {
	suite.Require().NoError(suite.db.Create(&[]driverrepo.ProfileDTO{
		{ID: uuid.New(), Name: ptr("Ravi"), City: ptr("Mumbai")},
		{ID: uuid.New(), FullName: ptr("  "), Name: ptr("Meera")},
	}).Error)

	drivers, err := suite.repository.ListDrivers(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(drivers, 2)
	names := []string{drivers[0].Name(), drivers[1].Name()}
	suite.ElementsMatch([]string{"Ravi", "Meera"}, names)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestListDrivers_UnnamedDriver() {
	suite.Require().NoError(suite.db.Create(&driverrepo.DriverDTO{ID: uuid.New()}).Error)

	drivers, err := suite.repository.ListDrivers(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(drivers, 1)
	suite.Empty(drivers[0].Name())
	suite.Equal(driver.UnnamedDriver, drivers[0].DisplayName())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestListDrivers_NoRowsAnywhere() {
	drivers, err := suite.repository.ListDrivers(context.Background())

	suite.Require().NoError(err)
	suite.Empty(drivers)
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
