package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

func newAppointmentServiceForTest() (AppointmentService, *fakeAppointmentRepo, *fakeClientRepo, *fakeTagRepo, *fakeDriverRepo) {
	appointmentRepo := newFakeAppointmentRepo()
	clientRepo := newFakeClientRepo()
	tagRepo := newFakeTagRepo()
	driverRepo := newFakeDriverRepo()

	clientService := NewClientService(clientRepo, nil)
	tagService := NewTagService(tagRepo, appointmentRepo, nil)
	service := NewAppointmentService(appointmentRepo, driverRepo, clientService, tagService, nil)
	return service, appointmentRepo, clientRepo, tagRepo, driverRepo
}

func TestCreateAppointmentSyncsClient(t *testing.T) {
	service, _, clientRepo, _, _ := newAppointmentServiceForTest()

	appointment, err := service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		PatientCPF:    strPtr("529.982.247-25"),
		ScheduledDate: "10/03/2026",
		Status:        strPtr("Confirmado"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, appointment.ExternalID)
	assert.Equal(t, "2026-03-10", appointment.ScheduledDate)
	assert.Equal(t, "52998224725", *appointment.PatientCPF)

	client, err := clientRepo.GetClientByCPF("52998224725")
	require.NoError(t, err)
	assert.Equal(t, 1, client.TotalAppointments)
	assert.Equal(t, "Confirmado", *client.LastStatus)
}

func TestCreateAppointmentDefaultsStatusPending(t *testing.T) {
	service, _, _, _, _ := newAppointmentServiceForTest()

	appointment, err := service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		ScheduledDate: "2026-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pendente", appointment.Status)
}

func TestCreateAppointmentRejectsInvalidInput(t *testing.T) {
	service, _, _, _, _ := newAppointmentServiceForTest()

	_, err := service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		PatientCPF:    strPtr("11111111111"),
		ScheduledDate: "2026-03-10",
	})
	assert.ErrorIs(t, err, ErrAppointmentValidation)

	_, err = service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		ScheduledDate: "03-10-2026",
	})
	assert.ErrorIs(t, err, ErrDateFormat)

	_, err = service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		ScheduledDate: "2026-03-10",
		Status:        strPtr("Agendado"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateAppointmentStatusSyncsClient(t *testing.T) {
	service, _, clientRepo, _, _ := newAppointmentServiceForTest()

	appointment, err := service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		PatientCPF:    strPtr("52998224725"),
		ScheduledDate: "2026-03-10",
	})
	require.NoError(t, err)

	updated, err := service.UpdateAppointmentStatus(appointment.ID, UpdateAppointmentStatusRequest{Status: "Confirmado"})
	require.NoError(t, err)
	assert.Equal(t, "Confirmado", updated.Status)

	client, err := clientRepo.GetClientByCPF("52998224725")
	require.NoError(t, err)
	assert.Equal(t, 1, client.TotalAppointments)
	require.Len(t, client.History, 1)
	assert.Equal(t, "Confirmado", client.History[0].Status)
}

func TestUpdateAppointmentValidatesDriver(t *testing.T) {
	service, _, _, _, driverRepo := newAppointmentServiceForTest()

	appointment, err := service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		ScheduledDate: "2026-03-10",
	})
	require.NoError(t, err)

	missing := int64(42)
	_, err = service.UpdateAppointment(appointment.ID, UpdateAppointmentRequest{DriverID: &missing})
	assert.ErrorIs(t, err, ErrDriverForApptNotFound)

	driver := driverRepo.seed(models.Driver{Name: "Carlos", IsActive: true})
	updated, err := service.UpdateAppointment(appointment.ID, UpdateAppointmentRequest{DriverID: &driver.ID})
	require.NoError(t, err)
	assert.Equal(t, driver.ID, *updated.DriverID)
}

func TestSetAppointmentTagsKeepsRequestOrderAndDropsInactive(t *testing.T) {
	service, _, _, tagRepo, _ := newAppointmentServiceForTest()

	urgent := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})
	inactive := tagRepo.seed(models.Tag{Name: "Retorno", NormalizedName: "retorno", Color: "#0000ff", IsActive: false})
	followUp := tagRepo.seed(models.Tag{Name: "Acompanhamento", NormalizedName: "acompanhamento", Color: "#00ff00", IsActive: true})

	appointment, err := service.CreateAppointment(CreateAppointmentRequest{
		PatientName:   "Maria Souza",
		ScheduledDate: "2026-03-10",
	})
	require.NoError(t, err)

	updated, err := service.SetAppointmentTags(appointment.ID, SetAppointmentTagsRequest{
		TagIDs: []int64{followUp.ID, inactive.ID, urgent.ID, 999},
	})
	require.NoError(t, err)

	require.Len(t, updated.Tags, 2)
	assert.Equal(t, "Acompanhamento", updated.Tags[0].Name)
	assert.Equal(t, "Urgente", updated.Tags[1].Name)
	assert.Equal(t, "#ff0000", updated.Tags[1].Color)
}
