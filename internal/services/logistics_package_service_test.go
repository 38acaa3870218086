package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

func newPackageServiceForTest() (LogisticsPackageService, *fakePackageRepo, *fakeDriverRepo, *fakeCollectorRepo, *fakeCarRepo) {
	packageRepo := newFakePackageRepo()
	driverRepo := newFakeDriverRepo()
	collectorRepo := newFakeCollectorRepo()
	carRepo := newFakeCarRepo()
	service := NewLogisticsPackageService(packageRepo, driverRepo, collectorRepo, carRepo, nil)
	return service, packageRepo, driverRepo, collectorRepo, carRepo
}

func TestCreatePackageDenormalizesDisplayFields(t *testing.T) {
	service, _, driverRepo, collectorRepo, carRepo := newPackageServiceForTest()

	driver := driverRepo.seed(models.Driver{Name: "Carlos", IsActive: true})
	collector := collectorRepo.seed(models.Collector{Name: "Ana", IsActive: true})
	car := carRepo.seed(models.Car{Model: "Fiorino", LicensePlate: "ABC1D23", IsActive: true})

	pkg, err := service.CreatePackage(CreatePackageRequest{
		Name:        "Rota Centro",
		DriverID:    driver.ID,
		CollectorID: collector.ID,
		CarID:       car.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Carlos", pkg.DriverName)
	assert.Equal(t, "Ana", pkg.CollectorName)
	assert.Equal(t, "Fiorino", pkg.CarModel)
	assert.Equal(t, "ABC1D23", pkg.CarLicensePlate)
	assert.True(t, pkg.IsActive)
}

func TestCreatePackageRejectsMissingReferences(t *testing.T) {
	service, _, driverRepo, collectorRepo, carRepo := newPackageServiceForTest()

	driver := driverRepo.seed(models.Driver{Name: "Carlos", IsActive: true})
	collector := collectorRepo.seed(models.Collector{Name: "Ana", IsActive: true})
	carRepo.seed(models.Car{Model: "Fiorino", LicensePlate: "ABC1D23", IsActive: true})

	_, err := service.CreatePackage(CreatePackageRequest{
		Name:        "Rota Centro",
		DriverID:    driver.ID,
		CollectorID: collector.ID,
		CarID:       42,
	})
	assert.ErrorIs(t, err, ErrPackageReference)
}

func TestCreatePackageRejectsDuplicateName(t *testing.T) {
	service, _, driverRepo, collectorRepo, carRepo := newPackageServiceForTest()

	driver := driverRepo.seed(models.Driver{Name: "Carlos", IsActive: true})
	collector := collectorRepo.seed(models.Collector{Name: "Ana", IsActive: true})
	car := carRepo.seed(models.Car{Model: "Fiorino", LicensePlate: "ABC1D23", IsActive: true})

	req := CreatePackageRequest{
		Name:        "Rota Centro",
		DriverID:    driver.ID,
		CollectorID: collector.ID,
		CarID:       car.ID,
	}
	_, err := service.CreatePackage(req)
	require.NoError(t, err)

	_, err = service.CreatePackage(req)
	assert.ErrorIs(t, err, ErrPackageNameExists)
}

func TestUpdatePackageRefreshesDisplayFields(t *testing.T) {
	service, _, driverRepo, collectorRepo, carRepo := newPackageServiceForTest()

	driver := driverRepo.seed(models.Driver{Name: "Carlos", IsActive: true})
	collector := collectorRepo.seed(models.Collector{Name: "Ana", IsActive: true})
	car := carRepo.seed(models.Car{Model: "Fiorino", LicensePlate: "ABC1D23", IsActive: true})

	pkg, err := service.CreatePackage(CreatePackageRequest{
		Name:        "Rota Centro",
		DriverID:    driver.ID,
		CollectorID: collector.ID,
		CarID:       car.ID,
	})
	require.NoError(t, err)

	otherDriver := driverRepo.seed(models.Driver{Name: "Roberto", IsActive: true})
	updated, err := service.UpdatePackage(pkg.ID, UpdatePackageRequest{DriverID: &otherDriver.ID})
	require.NoError(t, err)

	assert.Equal(t, "Roberto", updated.DriverName)
	assert.Equal(t, "Ana", updated.CollectorName)
}
