package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/dmitrijs2005/supacrm/internal/optimistic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordService(t *testing.T) (*RecordService, *fakeRecords, *mapGeocoder) {
	t.Helper()
	repo := &fakeRecords{}
	geo := newMapGeocoder()
	s := NewRecordService(repo, geo, nil, nil)
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s, repo, geo
}

func TestRecordService_Add(t *testing.T) {
	s, repo, _ := newRecordService(t)

	got, err := s.Add(context.Background(), models.RecordInput{
		FirstName: " Ann ", LastName: "Lee", Email: "a@x.com", Phone: "111", Location: "germany",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "Germany", got.Location, "canonical name replaces the input")
	require.True(t, got.HasCoordinates())
	assert.Equal(t, 51.0, *got.Latitude)
	assert.False(t, got.CreatedAt.IsZero())

	assert.Equal(t, []models.Record{got}, s.List())
	assert.Len(t, repo.rows, 1)
}

func TestRecordService_Add_NoLocation(t *testing.T) {
	s, _, geo := newRecordService(t)

	got, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann"})
	require.NoError(t, err)
	assert.False(t, got.HasCoordinates())
	assert.Zero(t, geo.calls)
}

func TestRecordService_Add_DuplicateEmailRejected(t *testing.T) {
	s, repo, _ := newRecordService(t)

	_, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = s.Add(context.Background(), models.RecordInput{FirstName: "Bob", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicate)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Len(t, s.List(), 1)
	assert.Equal(t, 1, repo.inserts)
}

func TestRecordService_Add_StoreRejectsDuplicate(t *testing.T) {
	s, repo, _ := newRecordService(t)
	repo.insertErr = common.ErrDuplicate

	_, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicate)
	assert.ErrorIs(t, err, common.ErrRemoteWrite)
	assert.Empty(t, s.List())
}

func TestRecordService_Add_UnknownLocation(t *testing.T) {
	s, repo, _ := newRecordService(t)

	_, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Location: "Atlantis"})
	assert.ErrorIs(t, err, common.ErrNormalization)
	assert.Empty(t, s.List())
	assert.Zero(t, repo.inserts)
}

func TestRecordService_Add_RequiresName(t *testing.T) {
	s, _, _ := newRecordService(t)
	_, err := s.Add(context.Background(), models.RecordInput{Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRecordService_Add_GuardReadFailure(t *testing.T) {
	s, repo, _ := newRecordService(t)
	repo.findErr = errors.New("offline")

	_, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrRemoteRead)
	assert.Zero(t, repo.inserts)
}

func TestRecordService_Update(t *testing.T) {
	s, _, _ := newRecordService(t)
	orig, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Email: "a@x.com", Location: "Germany"})
	require.NoError(t, err)

	got, err := s.Update(context.Background(), orig.ID, models.RecordInput{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Location: "france"})
	require.NoError(t, err, "own email does not conflict")
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Equal(t, "France", got.Location)
	assert.Equal(t, 46.0, *got.Latitude)

	stored, ok := s.Get(orig.ID)
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestRecordService_Update_UnknownLocationKeepsFields(t *testing.T) {
	s, repo, _ := newRecordService(t)
	orig, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Location: "Germany"})
	require.NoError(t, err)

	_, err = s.Update(context.Background(), orig.ID, models.RecordInput{FirstName: "Ann", Location: "Qwertyland"})
	assert.ErrorIs(t, err, common.ErrNormalization)

	stored, _ := s.Get(orig.ID)
	assert.Equal(t, orig, stored)
	assert.Equal(t, "Germany", stored.Location)
	assert.Zero(t, repo.updates)
}

func TestRecordService_Update_ConflictWithOther(t *testing.T) {
	s, _, _ := newRecordService(t)
	_, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Email: "a@x.com"})
	require.NoError(t, err)
	bob, err := s.Add(context.Background(), models.RecordInput{FirstName: "Bob", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = s.Update(context.Background(), bob.ID, models.RecordInput{FirstName: "Bob", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicate)
	stored, _ := s.Get(bob.ID)
	assert.Equal(t, "b@x.com", stored.Email)
}

func TestRecordService_Update_RemoteFailureRollsBack(t *testing.T) {
	s, repo, _ := newRecordService(t)
	orig, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", Email: "a@x.com"})
	require.NoError(t, err)
	repo.updateErr = errors.New("timeout")

	_, err = s.Update(context.Background(), orig.ID, models.RecordInput{FirstName: "Changed", Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrRemoteWrite)
	stored, _ := s.Get(orig.ID)
	assert.Equal(t, orig, stored)
}

func TestRecordService_Update_NotFound(t *testing.T) {
	s, _, geo := newRecordService(t)
	_, err := s.Update(context.Background(), "99", models.RecordInput{FirstName: "x", Location: "Germany"})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, geo.calls)
}

func TestRecordService_Remove(t *testing.T) {
	s, repo, _ := newRecordService(t)
	a, _ := s.Add(context.Background(), models.RecordInput{FirstName: "Ann"})
	b, _ := s.Add(context.Background(), models.RecordInput{FirstName: "Bob"})

	repo.deleteErr = errors.New("offline")
	assert.ErrorIs(t, s.Remove(context.Background(), a.ID), common.ErrRemoteWrite)
	assert.Equal(t, []models.Record{a, b}, s.List(), "restored in place")

	repo.deleteErr = nil
	require.NoError(t, s.Remove(context.Background(), a.ID))
	assert.Equal(t, []models.Record{b}, s.List())
}

func TestRecordService_Remove_Declined(t *testing.T) {
	repo := &fakeRecords{}
	s := NewRecordService(repo, newMapGeocoder(), nil, optimistic.ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, nil
	}))
	a, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Remove(context.Background(), a.ID), common.ErrCanceled)
	assert.Len(t, s.List(), 1)
	assert.Zero(t, repo.deletes)
}

func TestRecordService_Markers(t *testing.T) {
	s, _, _ := newRecordService(t)
	_, err := s.Add(context.Background(), models.RecordInput{FirstName: "Ann", LastName: "Lee", Location: "Latvia"})
	require.NoError(t, err)
	_, err = s.Add(context.Background(), models.RecordInput{FirstName: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, []models.Marker{{ID: "1", Lat: 57, Lng: 25, Draggable: false, Label: "Ann Lee, Latvia"}}, s.Markers())
}
