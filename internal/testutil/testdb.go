// Package testutil holds fixtures shared by the package tests: an in-memory
// SQLite database, a controllable clock and an HTTP test server.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/database"
	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/services"

	"github.com/google/uuid"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// Epoch is the starting time of every test clock.
var Epoch = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type Env struct {
	DB    *gorm.DB
	Clock *testclock.Clock
}

// NewEnv opens a private in-memory database migrated with the production schema.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	logger.Init("test")

	clk := testclock.NewClock(Epoch)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig(clk))
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db), "migrate sqlite")
	return &Env{DB: db, Clock: clk}
}

// Tick moves the clock one second so consecutive rows get distinct timestamps.
func (e *Env) Tick() {
	e.Clock.Advance(time.Second)
}

// Services builds the full service container on top of the test clock.
func (e *Env) Services(opts services.Options) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	propertyRepo := repositories.NewPropertyRepository()
	applicationRepo := repositories.NewApplicationRepository()
	viewingRepo := repositories.NewViewingRepository()
	favoriteRepo := repositories.NewFavoriteRepository()

	return &services.ServiceContainer{
		UserService:        services.NewUserService(userRepo, e.Clock),
		PropertyService:    services.NewPropertyService(propertyRepo, userRepo, e.Clock, opts),
		ApplicationService: services.NewApplicationService(applicationRepo, propertyRepo, userRepo, e.Clock, opts),
		ViewingService:     services.NewViewingService(viewingRepo, propertyRepo, userRepo, e.Clock, opts),
		FavoriteService:    services.NewFavoriteService(favoriteRepo, propertyRepo, userRepo, e.Clock),
		DashboardService:   services.NewDashboardService(propertyRepo, applicationRepo, viewingRepo, favoriteRepo, userRepo),
	}
}

// CreateUser inserts an active user with DefaultPassword.
func (e *Env) CreateUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	id := uuid.NewString()
	user := &models.User{
		Name:         "User " + id[:8],
		Email:        fmt.Sprintf("%s_%s@test.com", role, id[:8]),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, e.DB.Create(user).Error, "create user")
	e.Tick()
	return user
}

// CreateProperty inserts an APPROVED sale listing; mutators adjust it before insert.
func (e *Env) CreateProperty(t *testing.T, owner *models.User, mutators ...func(*models.Property)) *models.Property {
	t.Helper()

	property := &models.Property{
		OwnerID:      owner.ID,
		Title:        "Sunny two bedroom",
		Description:  "Close to the park",
		Address:      "12 Main Street",
		City:         "Springfield",
		PropertyType: models.PropertyTypeApartment,
		ListingType:  models.ListingTypeSale,
		Price:        250000,
		Bedrooms:     2,
		Bathrooms:    1,
		AreaSqm:      75,
		Status:       models.PropertyStatusApproved,
	}
	require.NoError(t, property.SetAmenities([]string{"parking"}))
	for _, mutate := range mutators {
		mutate(property)
	}
	require.NoError(t, e.DB.Create(property).Error, "create property")
	e.Tick()
	return property
}

// CreateApplication inserts an application directly, bypassing the workflow checks.
func (e *Env) CreateApplication(t *testing.T, property *models.Property, applicant *models.User, status models.ApplicationStatus) *models.Application {
	t.Helper()

	application := &models.Application{
		PropertyID:      property.ID,
		UserID:          applicant.ID,
		ApplicationType: models.ApplicationTypeFor(property.ListingType),
		Status:          status,
	}
	require.NoError(t, e.DB.Create(application).Error, "create application")
	e.Tick()
	return application
}

// CreateViewing inserts a viewing directly, bypassing the workflow checks.
func (e *Env) CreateViewing(t *testing.T, property *models.Property, requester *models.User, at time.Time, status models.ViewingStatus) *models.PropertyViewing {
	t.Helper()

	viewing := &models.PropertyViewing{
		PropertyID:  property.ID,
		UserID:      requester.ID,
		ViewingDate: at.UTC(),
		Status:      status,
	}
	require.NoError(t, e.DB.Create(viewing).Error, "create viewing")
	e.Tick()
	return viewing
}

func WithStatus(status models.PropertyStatus) func(*models.Property) {
	return func(p *models.Property) { p.Status = status }
}

func WithListing(listing models.ListingType) func(*models.Property) {
	return func(p *models.Property) { p.ListingType = listing }
}

func WithCity(city string) func(*models.Property) {
	return func(p *models.Property) { p.City = city }
}

func WithPrice(price float64) func(*models.Property) {
	return func(p *models.Property) { p.Price = price }
}

func WithBedrooms(bedrooms int) func(*models.Property) {
	return func(p *models.Property) { p.Bedrooms = bedrooms }
}

func WithType(propertyType models.PropertyType) func(*models.Property) {
	return func(p *models.Property) { p.PropertyType = propertyType }
}
