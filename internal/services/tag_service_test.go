package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func newTagServiceForTest() (TagService, *fakeTagRepo, *fakeAppointmentRepo) {
	tagRepo := newFakeTagRepo()
	appointmentRepo := newFakeAppointmentRepo()
	return NewTagService(tagRepo, appointmentRepo, nil), tagRepo, appointmentRepo
}

func TestCreateTagNormalizedNameConflict(t *testing.T) {
	service, tagRepo, _ := newTagServiceForTest()
	tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})

	cases := []string{"urgente", "URGENTE", "  Urgente  "}
	for _, name := range cases {
		_, err := service.CreateTag(CreateTagRequest{Name: name, Color: "#00ff00"})
		assert.ErrorIs(t, err, ErrTagNameExists, "name %q should conflict", name)
	}
	assert.Len(t, tagRepo.tags, 1)
}

func TestCreateTagValidatesColor(t *testing.T) {
	service, _, _ := newTagServiceForTest()

	_, err := service.CreateTag(CreateTagRequest{Name: "Urgente", Color: "red"})
	assert.ErrorIs(t, err, ErrTagValidation)

	tag, err := service.CreateTag(CreateTagRequest{Name: "Urgente", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "urgente", tag.NormalizedName)
	assert.True(t, tag.IsActive)
}

func TestUpdateTagEmptyRequestRejectedBeforeLookup(t *testing.T) {
	service, _, _ := newTagServiceForTest()

	// Tag 99 does not exist; the empty change set must win over NotFound.
	_, err := service.UpdateTag(99, UpdateTagRequest{})
	assert.ErrorIs(t, err, ErrTagNoChanges)
}

func TestUpdateTagAllNoOpFieldsRejected(t *testing.T) {
	service, tagRepo, _ := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Prioridade", NormalizedName: "prioridade", Color: "#ff0000", IsActive: true})

	_, err := service.UpdateTag(seeded.ID, UpdateTagRequest{
		Name:     strPtr("  PRIORIDADE "),
		Color:    strPtr("#FF0000"),
		IsActive: boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrTagNoChanges)
	assert.Equal(t, 0, tagRepo.updateCalls)
}

func TestUpdateTagRenameFansOutOnce(t *testing.T) {
	service, tagRepo, appointmentRepo := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})

	appointmentRepo.CreateAppointment(nil, &models.Appointment{
		ExternalID:  "appt-1",
		PatientName: "Maria Souza",
		Tags:        []models.TagRef{{ID: seeded.ID, Name: "Urgente", Color: "#ff0000"}},
	})

	updated, err := service.UpdateTag(seeded.ID, UpdateTagRequest{
		Name:  strPtr("Prioridade"),
		Color: strPtr("#00ff00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Prioridade", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)

	require.Len(t, appointmentRepo.refUpdates, 1)
	assert.Equal(t, tagReferenceUpdate{TagID: seeded.ID, Name: "Prioridade", Color: "#00ff00"}, appointmentRepo.refUpdates[0])

	appointment, err := appointmentRepo.GetAppointmentByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Prioridade", appointment.Tags[0].Name)
	assert.Equal(t, "#00ff00", appointment.Tags[0].Color)
}

func TestUpdateTagActiveFlagDoesNotFanOut(t *testing.T) {
	service, tagRepo, appointmentRepo := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})

	updated, err := service.UpdateTag(seeded.ID, UpdateTagRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Empty(t, appointmentRepo.refUpdates)
}

func TestUpdateTagFanOutFailureIsNotRolledBack(t *testing.T) {
	service, tagRepo, appointmentRepo := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})
	appointmentRepo.refErr = assert.AnError

	updated, err := service.UpdateTag(seeded.ID, UpdateTagRequest{Name: strPtr("Prioridade")})
	require.NoError(t, err)
	assert.Equal(t, "Prioridade", updated.Name)

	stored, err := tagRepo.GetTagByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prioridade", stored.Name)
}

func TestUpdateTagRenameConflictExcludesSelf(t *testing.T) {
	service, tagRepo, _ := newTagServiceForTest()
	first := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})
	tagRepo.seed(models.Tag{Name: "Retorno", NormalizedName: "retorno", Color: "#0000ff", IsActive: true})

	_, err := service.UpdateTag(first.ID, UpdateTagRequest{Name: strPtr("Retorno")})
	assert.ErrorIs(t, err, ErrTagNameExists)

	// Renaming only the display casing of its own name is a no-op, not a
	// conflict with itself.
	_, err = service.UpdateTag(first.ID, UpdateTagRequest{Name: strPtr("URGENTE")})
	assert.ErrorIs(t, err, ErrTagNoChanges)
}

func TestDeleteTagBlockedWhileReferenced(t *testing.T) {
	service, tagRepo, appointmentRepo := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})
	appointmentRepo.tagCounts[seeded.ID] = 3

	err := service.DeleteTag(seeded.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTagInUse)

	var inUse *TagInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 3, inUse.References)

	_, err = tagRepo.GetTagByID(seeded.ID)
	assert.NoError(t, err)
}

func TestDeleteTagUnreferencedSucceeds(t *testing.T) {
	service, tagRepo, _ := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})

	require.NoError(t, service.DeleteTag(seeded.ID))

	_, err := tagRepo.GetTagByID(seeded.ID)
	assert.Error(t, err)
}

func TestDeleteTagRaceReportsDeleteFailed(t *testing.T) {
	service, tagRepo, _ := newTagServiceForTest()
	seeded := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})
	tagRepo.deletedRows = 0

	err := service.DeleteTag(seeded.ID)
	assert.ErrorIs(t, err, ErrTagDeleteFailed)
}

func TestGetActiveTagsByIDsDropsInactiveAndUnknown(t *testing.T) {
	service, tagRepo, _ := newTagServiceForTest()
	active := tagRepo.seed(models.Tag{Name: "Urgente", NormalizedName: "urgente", Color: "#ff0000", IsActive: true})
	inactive := tagRepo.seed(models.Tag{Name: "Retorno", NormalizedName: "retorno", Color: "#0000ff", IsActive: false})

	summaries, err := service.GetActiveTagsByIDs([]int64{active.ID, inactive.ID, 999})
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, "Urgente", summaries[active.ID].Name)
}
