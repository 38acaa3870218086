package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

func strPtr(s string) *string { return &s }

func newTestAppointment(externalID string) *models.Appointment {
	return &models.Appointment{
		ExternalID:    externalID,
		PatientName:   "Maria Souza",
		PatientCPF:    strPtr("529.982.247-25"),
		PatientPhone:  strPtr("11999990000"),
		Brand:         strPtr("VidaLab"),
		Unit:          strPtr("Centro"),
		ScheduledDate: "2026-03-10",
		ScheduledTime: "09:30",
		Status:        string(models.AppointmentStatusPending),
		ConsultType:   strPtr("Coleta Domiciliar"),
	}
}

func TestSyncFromAppointmentCreatesClient(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	err := service.SyncFromAppointment(newTestAppointment("appt-1"))
	require.NoError(t, err)

	client, err := repo.GetClientByCPF("52998224725")
	require.NoError(t, err)

	assert.Equal(t, "Maria Souza", client.Name)
	assert.Equal(t, 1, client.TotalAppointments)
	require.Len(t, client.History, 1)
	assert.Equal(t, "appt-1", client.History[0].AppointmentID)
	assert.Equal(t, "VidaLab", client.History[0].Brand)
	assert.Equal(t, "Pendente", *client.LastStatus)
	assert.Equal(t, "2026-03-10", *client.LastAppointmentDate)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestSyncFromAppointmentWithoutCPFIsNoOp(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	appointment := newTestAppointment("appt-1")
	appointment.PatientCPF = nil
	require.NoError(t, service.SyncFromAppointment(appointment))

	appointment.PatientCPF = strPtr("   ")
	require.NoError(t, service.SyncFromAppointment(appointment))

	assert.Empty(t, repo.clients)
	assert.Equal(t, 0, repo.createCalls)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestSyncFromAppointmentResyncOverwritesHistoryEntry(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	appointment := newTestAppointment("appt-1")
	require.NoError(t, service.SyncFromAppointment(appointment))

	client, err := repo.GetClientByCPF("52998224725")
	require.NoError(t, err)
	originalCreatedAt := client.History[0].CreatedAt

	appointment.Status = string(models.AppointmentStatusConfirmed)
	appointment.ScheduledTime = "14:00"
	require.NoError(t, service.SyncFromAppointment(appointment))

	client, err = repo.GetClientByCPF("52998224725")
	require.NoError(t, err)

	assert.Equal(t, 1, client.TotalAppointments)
	require.Len(t, client.History, 1)
	assert.Equal(t, "Confirmado", client.History[0].Status)
	assert.Equal(t, "14:00", client.History[0].ScheduledTime)
	assert.Equal(t, originalCreatedAt, client.History[0].CreatedAt)
	assert.Equal(t, "Confirmado", *client.LastStatus)
}

func TestSyncFromAppointmentSecondAppointmentAppends(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	require.NoError(t, service.SyncFromAppointment(newTestAppointment("appt-1")))

	second := newTestAppointment("appt-2")
	second.ScheduledDate = "2026-04-02"
	second.Status = string(models.AppointmentStatusConfirmed)
	require.NoError(t, service.SyncFromAppointment(second))

	client, err := repo.GetClientByCPF("52998224725")
	require.NoError(t, err)

	assert.Equal(t, 2, client.TotalAppointments)
	assert.Len(t, client.History, 2)
	assert.Equal(t, "Confirmado", *client.LastStatus)
	assert.Equal(t, "2026-04-02", *client.LastAppointmentDate)
}

func TestSyncFromAppointmentPreservesPhoneAndLastFields(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	require.NoError(t, service.SyncFromAppointment(newTestAppointment("appt-1")))

	second := newTestAppointment("appt-2")
	second.PatientName = "Maria S. Souza"
	second.PatientPhone = strPtr("")
	second.Brand = nil
	second.Unit = strPtr("")
	second.ConsultType = nil
	require.NoError(t, service.SyncFromAppointment(second))

	client, err := repo.GetClientByCPF("52998224725")
	require.NoError(t, err)

	assert.Equal(t, "Maria S. Souza", client.Name)
	assert.Equal(t, "11999990000", *client.Phone)
	assert.Equal(t, "VidaLab", *client.LastBrand)
	assert.Equal(t, "Centro", *client.LastUnit)
	assert.Equal(t, "Coleta Domiciliar", *client.LastConsultType)
}

func TestSyncFromAppointmentSingleWritePerSync(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	require.NoError(t, service.SyncFromAppointment(newTestAppointment("appt-1")))
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 0, repo.updateCalls)

	require.NoError(t, service.SyncFromAppointment(newTestAppointment("appt-2")))
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestSyncFromAppointmentsStopsAtFirstFailure(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	appointments := []models.Appointment{
		*newTestAppointment("appt-1"),
		*newTestAppointment("appt-2"),
		*newTestAppointment("appt-3"),
	}
	// 11144477735 is a second valid CPF so the failing appointment targets a
	// different aggregate.
	appointments[1].PatientCPF = strPtr("11144477735")

	require.NoError(t, service.SyncFromAppointment(&appointments[0]))
	repo.failUpdate = assert.AnError

	err := service.SyncFromAppointments(appointments)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appt-1")

	// The first aggregate's create survived; the failing batch did not touch
	// the second CPF.
	_, err = repo.GetClientByCPF("52998224725")
	assert.NoError(t, err)
	_, err = repo.GetClientByCPF("11144477735")
	assert.Error(t, err)
}

func TestCreateClientRejectsDuplicateCPF(t *testing.T) {
	repo := newFakeClientRepo()
	service := NewClientService(repo, nil)

	_, err := service.CreateClient(CreateClientRequest{Name: "Maria", CPF: "529.982.247-25"})
	require.NoError(t, err)

	_, err = service.CreateClient(CreateClientRequest{Name: "Outra Maria", CPF: "52998224725"})
	assert.ErrorIs(t, err, ErrClientCPFExists)
}

func TestCreateClientRejectsInvalidCPF(t *testing.T) {
	service := NewClientService(newFakeClientRepo(), nil)

	_, err := service.CreateClient(CreateClientRequest{Name: "Maria", CPF: "12345678900"})
	assert.ErrorIs(t, err, ErrClientValidation)
}
