package services

import (
	"strings"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
)

// In-memory repository fakes. The executor arguments are ignored; the fakes
// hold their state in maps keyed by id.

type fakeClientRepo struct {
	clients map[int64]*models.Client
	nextID  int64

	createCalls int
	updateCalls int
	failCreate  error
	failUpdate  error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[int64]*models.Client{}, nextID: 1}
}

func (f *fakeClientRepo) CreateClient(_ repositories.SQLExecutor, client *models.Client) (int64, error) {
	f.createCalls++
	if f.failCreate != nil {
		return 0, f.failCreate
	}
	for _, existing := range f.clients {
		if existing.CPF == client.CPF {
			return 0, repositories.ErrDuplicateKey
		}
	}
	client.ID = f.nextID
	f.nextID++
	stored := *client
	f.clients[client.ID] = &stored
	return client.ID, nil
}

func (f *fakeClientRepo) GetClientByID(id int64) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *client
	return &copied, nil
}

func (f *fakeClientRepo) GetClientByCPF(cpf string) (*models.Client, error) {
	for _, client := range f.clients {
		if client.CPF == cpf {
			copied := *client
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientRepo) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	clients := []models.Client{}
	for _, client := range f.clients {
		clients = append(clients, *client)
	}
	return clients, len(clients), nil
}

func (f *fakeClientRepo) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	f.updateCalls++
	if f.failUpdate != nil {
		return f.failUpdate
	}
	if _, ok := f.clients[client.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *client
	f.clients[client.ID] = &stored
	return nil
}

func (f *fakeClientRepo) DeleteClient(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

type fakeTagRepo struct {
	tags   map[int64]*models.Tag
	nextID int64

	updateCalls int
	deletedRows int64
	deleteErr   error
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[int64]*models.Tag{}, nextID: 1, deletedRows: 1}
}

func (f *fakeTagRepo) seed(tag models.Tag) *models.Tag {
	tag.ID = f.nextID
	f.nextID++
	if tag.NormalizedName == "" {
		tag.NormalizedName = strings.ToLower(strings.TrimSpace(tag.Name))
	}
	stored := tag
	f.tags[tag.ID] = &stored
	return &stored
}

func (f *fakeTagRepo) CreateTag(_ repositories.SQLExecutor, tag *models.Tag) (int64, error) {
	for _, existing := range f.tags {
		if existing.NormalizedName == tag.NormalizedName {
			return 0, repositories.ErrDuplicateKey
		}
	}
	tag.ID = f.nextID
	f.nextID++
	stored := *tag
	f.tags[tag.ID] = &stored
	return tag.ID, nil
}

func (f *fakeTagRepo) GetTagByID(id int64) (*models.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *tag
	return &copied, nil
}

func (f *fakeTagRepo) GetTags(page, pageSize int, searchTerm *string, includeInactive bool) ([]models.Tag, int, error) {
	tags := []models.Tag{}
	for _, tag := range f.tags {
		if !includeInactive && !tag.IsActive {
			continue
		}
		tags = append(tags, *tag)
	}
	return tags, len(tags), nil
}

func (f *fakeTagRepo) GetActiveTagsByIDs(ids []int64) ([]models.Tag, error) {
	tags := []models.Tag{}
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok && tag.IsActive {
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}

func (f *fakeTagRepo) ExistsByNormalizedName(normalizedName string, excludeID *int64) (bool, error) {
	for _, tag := range f.tags {
		if excludeID != nil && tag.ID == *excludeID {
			continue
		}
		if tag.NormalizedName == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTagRepo) UpdateTag(_ repositories.SQLExecutor, tag *models.Tag) error {
	f.updateCalls++
	if _, ok := f.tags[tag.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *tag
	f.tags[tag.ID] = &stored
	return nil
}

func (f *fakeTagRepo) DeleteTag(_ repositories.SQLExecutor, id int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if f.deletedRows == 0 {
		return 0, nil
	}
	if _, ok := f.tags[id]; !ok {
		return 0, nil
	}
	delete(f.tags, id)
	return 1, nil
}

type tagReferenceUpdate struct {
	TagID int64
	Name  string
	Color string
}

type fakeAppointmentRepo struct {
	appointments map[int64]*models.Appointment
	nextID       int64

	tagCounts  map[int64]int
	refUpdates []tagReferenceUpdate
	refErr     error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[int64]*models.Appointment{},
		nextID:       1,
		tagCounts:    map[int64]int{},
	}
}

func (f *fakeAppointmentRepo) CreateAppointment(_ repositories.SQLExecutor, appointment *models.Appointment) (int64, error) {
	appointment.ID = f.nextID
	f.nextID++
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return appointment.ID, nil
}

func (f *fakeAppointmentRepo) GetAppointmentByID(id int64) (*models.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, int, error) {
	appointments := []models.Appointment{}
	for _, appointment := range f.appointments {
		appointments = append(appointments, *appointment)
	}
	return appointments, len(appointments), nil
}

func (f *fakeAppointmentRepo) UpdateAppointment(_ repositories.SQLExecutor, appointment *models.Appointment) error {
	if _, ok := f.appointments[appointment.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) UpdateAppointmentStatus(_ repositories.SQLExecutor, id int64, status string) error {
	appointment, ok := f.appointments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	appointment.Status = status
	return nil
}

func (f *fakeAppointmentRepo) SetAppointmentTags(_ repositories.SQLExecutor, id int64, tags []models.TagRef) error {
	appointment, ok := f.appointments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	appointment.Tags = tags
	return nil
}

func (f *fakeAppointmentRepo) DeleteAppointment(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.appointments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) UpdateTagReferences(_ repositories.SQLExecutor, tagID int64, name, color string) error {
	if f.refErr != nil {
		return f.refErr
	}
	f.refUpdates = append(f.refUpdates, tagReferenceUpdate{TagID: tagID, Name: name, Color: color})
	for _, appointment := range f.appointments {
		for i := range appointment.Tags {
			if appointment.Tags[i].ID == tagID {
				appointment.Tags[i].Name = name
				appointment.Tags[i].Color = color
			}
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) CountByTag(tagID int64) (int, error) {
	if count, ok := f.tagCounts[tagID]; ok {
		return count, nil
	}
	count := 0
	for _, appointment := range f.appointments {
		for _, tag := range appointment.Tags {
			if tag.ID == tagID {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeDriverRepo struct {
	drivers map[int64]*models.Driver
	nextID  int64
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: map[int64]*models.Driver{}, nextID: 1}
}

func (f *fakeDriverRepo) seed(driver models.Driver) *models.Driver {
	driver.ID = f.nextID
	f.nextID++
	stored := driver
	f.drivers[driver.ID] = &stored
	return &stored
}

func (f *fakeDriverRepo) CreateDriver(_ repositories.SQLExecutor, driver *models.Driver) (int64, error) {
	driver.ID = f.nextID
	f.nextID++
	stored := *driver
	f.drivers[driver.ID] = &stored
	return driver.ID, nil
}

func (f *fakeDriverRepo) GetDriverByID(id int64) (*models.Driver, error) {
	driver, ok := f.drivers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *driver
	return &copied, nil
}

func (f *fakeDriverRepo) GetDrivers(page, pageSize int, searchTerm *string) ([]models.Driver, int, error) {
	drivers := []models.Driver{}
	for _, driver := range f.drivers {
		drivers = append(drivers, *driver)
	}
	return drivers, len(drivers), nil
}

func (f *fakeDriverRepo) UpdateDriver(_ repositories.SQLExecutor, driver *models.Driver) error {
	if _, ok := f.drivers[driver.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *driver
	f.drivers[driver.ID] = &stored
	return nil
}

func (f *fakeDriverRepo) DeleteDriver(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.drivers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.drivers, id)
	return nil
}

type fakeCollectorRepo struct {
	collectors map[int64]*models.Collector
	nextID     int64
}

func newFakeCollectorRepo() *fakeCollectorRepo {
	return &fakeCollectorRepo{collectors: map[int64]*models.Collector{}, nextID: 1}
}

func (f *fakeCollectorRepo) seed(collector models.Collector) *models.Collector {
	collector.ID = f.nextID
	f.nextID++
	stored := collector
	f.collectors[collector.ID] = &stored
	return &stored
}

func (f *fakeCollectorRepo) CreateCollector(_ repositories.SQLExecutor, collector *models.Collector) (int64, error) {
	collector.ID = f.nextID
	f.nextID++
	stored := *collector
	f.collectors[collector.ID] = &stored
	return collector.ID, nil
}

func (f *fakeCollectorRepo) GetCollectorByID(id int64) (*models.Collector, error) {
	collector, ok := f.collectors[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *collector
	return &copied, nil
}

func (f *fakeCollectorRepo) GetCollectors(page, pageSize int, searchTerm *string) ([]models.Collector, int, error) {
	collectors := []models.Collector{}
	for _, collector := range f.collectors {
		collectors = append(collectors, *collector)
	}
	return collectors, len(collectors), nil
}

func (f *fakeCollectorRepo) UpdateCollector(_ repositories.SQLExecutor, collector *models.Collector) error {
	if _, ok := f.collectors[collector.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *collector
	f.collectors[collector.ID] = &stored
	return nil
}

func (f *fakeCollectorRepo) DeleteCollector(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.collectors[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.collectors, id)
	return nil
}

type fakeCarRepo struct {
	cars   map[int64]*models.Car
	nextID int64
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: map[int64]*models.Car{}, nextID: 1}
}

func (f *fakeCarRepo) seed(car models.Car) *models.Car {
	car.ID = f.nextID
	f.nextID++
	stored := car
	f.cars[car.ID] = &stored
	return &stored
}

func (f *fakeCarRepo) CreateCar(_ repositories.SQLExecutor, car *models.Car) (int64, error) {
	for _, existing := range f.cars {
		if existing.LicensePlate == car.LicensePlate {
			return 0, repositories.ErrDuplicateKey
		}
	}
	car.ID = f.nextID
	f.nextID++
	stored := *car
	f.cars[car.ID] = &stored
	return car.ID, nil
}

func (f *fakeCarRepo) GetCarByID(id int64) (*models.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *car
	return &copied, nil
}

func (f *fakeCarRepo) GetCars(page, pageSize int, searchTerm *string) ([]models.Car, int, error) {
	cars := []models.Car{}
	for _, car := range f.cars {
		cars = append(cars, *car)
	}
	return cars, len(cars), nil
}

func (f *fakeCarRepo) UpdateCar(_ repositories.SQLExecutor, car *models.Car) error {
	if _, ok := f.cars[car.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *car
	f.cars[car.ID] = &stored
	return nil
}

func (f *fakeCarRepo) DeleteCar(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.cars[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.cars, id)
	return nil
}

type fakePackageRepo struct {
	packages map[int64]*models.LogisticsPackage
	nextID   int64
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: map[int64]*models.LogisticsPackage{}, nextID: 1}
}

func (f *fakePackageRepo) CreatePackage(_ repositories.SQLExecutor, pkg *models.LogisticsPackage) (int64, error) {
	for _, existing := range f.packages {
		if existing.Name == pkg.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	pkg.ID = f.nextID
	f.nextID++
	stored := *pkg
	f.packages[pkg.ID] = &stored
	return pkg.ID, nil
}

func (f *fakePackageRepo) GetPackageByID(id int64) (*models.LogisticsPackage, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *pkg
	return &copied, nil
}

func (f *fakePackageRepo) GetPackages(page, pageSize int, searchTerm *string) ([]models.LogisticsPackage, int, error) {
	packages := []models.LogisticsPackage{}
	for _, pkg := range f.packages {
		packages = append(packages, *pkg)
	}
	return packages, len(packages), nil
}

func (f *fakePackageRepo) UpdatePackage(_ repositories.SQLExecutor, pkg *models.LogisticsPackage) error {
	if _, ok := f.packages[pkg.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *pkg
	f.packages[pkg.ID] = &stored
	return nil
}

func (f *fakePackageRepo) DeletePackage(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.packages[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.packages, id)
	return nil
}
