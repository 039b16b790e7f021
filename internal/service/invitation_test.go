package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/deppfellow/wedding-rsvp/internal/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvitees struct{ mock.Mock }

func (m *mockInvitees) GetInviteeByID(ctx context.Context, id string) (model.Invitee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Invitee), args.Error(1)
}

func (m *mockInvitees) GetInviteesByIDs(ctx context.Context, ids []string) ([]model.Invitee, error) {
	args := m.Called(ctx, ids)
	invitees, _ := args.Get(0).([]model.Invitee)
	return invitees, args.Error(1)
}

func (m *mockInvitees) UpdateInvitee(ctx context.Context, params model.UpdateInviteeParams) (model.Invitee, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Invitee), args.Error(1)
}

type mockRelations struct{ mock.Mock }

func (m *mockRelations) GetDependents(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) EnqueueRSVPUpdated(ctx context.Context, invitation model.Invitation) error {
	return m.Called(ctx, invitation).Error(0)
}

var (
	ctx = context.Background()

	primary = model.Invitee{ID: "p", FirstName: "Pat", LastName: "Doe", RSVP: model.RSVPComing}
	child1  = model.Invitee{ID: "c1", FirstName: "Kim", LastName: "Doe", RSVP: model.RSVPUnknown}
	child2  = model.Invitee{ID: "c2", FirstName: "Lee", LastName: "Doe", RSVP: model.RSVPNotComing, DietaryRequirements: "gluten"}
)

func TestFetchInvitation_WithDependents(t *testing.T) {
	invitees := &mockInvitees{}
	relations := &mockRelations{}

	relations.On("GetDependents", ctx, "p").Return([]string{"c1", "c2"}, nil).Once()
	invitees.On("GetInviteesByIDs", ctx, []string{"c1", "c2"}).Return([]model.Invitee{child1, child2}, nil).Once()
	invitees.On("GetInviteeByID", ctx, "p").Return(primary, nil).Once()

	svc := NewInvitationService(invitees, relations, nil)
	invitation, err := svc.FetchInvitation(ctx, "p")
	require.NoError(t, err)

	assert.Equal(t, primary, invitation.PrimaryInvitee)
	assert.Equal(t, []model.Invitee{child1, child2}, invitation.Dependents)
	invitees.AssertExpectations(t)
	relations.AssertExpectations(t)
}

func TestFetchInvitation_NoDependentsSkipsBatchQuery(t *testing.T) {
	invitees := &mockInvitees{}
	relations := &mockRelations{}

	relations.On("GetDependents", ctx, "p").Return([]string{}, nil).Once()
	invitees.On("GetInviteeByID", ctx, "p").Return(primary, nil).Once()

	svc := NewInvitationService(invitees, relations, nil)
	invitation, err := svc.FetchInvitation(ctx, "p")
	require.NoError(t, err)

	assert.NotNil(t, invitation.Dependents)
	assert.Empty(t, invitation.Dependents)
	invitees.AssertNotCalled(t, "GetInviteesByIDs", mock.Anything, mock.Anything)
}

func TestFetchInvitation_PrimaryNotFound(t *testing.T) {
	invitees := &mockInvitees{}
	relations := &mockRelations{}
	notFound := &sqlerr.NotFoundError{Entity: "invitee", ID: "ghost"}

	relations.On("GetDependents", ctx, "ghost").Return([]string{}, nil).Once()
	invitees.On("GetInviteeByID", ctx, "ghost").Return(model.Invitee{}, notFound).Once()

	svc := NewInvitationService(invitees, relations, nil)
	_, err := svc.FetchInvitation(ctx, "ghost")
	assert.True(t, sqlerr.IsNotFound(err))
}

func TestFetchInvitation_RelationFailureStops(t *testing.T) {
	invitees := &mockInvitees{}
	relations := &mockRelations{}

	relations.On("GetDependents", ctx, "p").Return(nil, sqlerr.Failure(errors.New("down"), "GetDependents")).Once()

	svc := NewInvitationService(invitees, relations, nil)
	_, err := svc.FetchInvitation(ctx, "p")
	assert.True(t, sqlerr.IsDBFailure(err))
	invitees.AssertNotCalled(t, "GetInviteeByID", mock.Anything, mock.Anything)
}

func TestUpdateInvitation(t *testing.T) {
	invitees := &mockInvitees{}
	notifier := &mockNotifier{}

	invitees.On("UpdateInvitee", ctx, primary.UpdateParams()).Return(primary, nil).Once()
	invitees.On("UpdateInvitee", ctx, child1.UpdateParams()).Return(child1, nil).Once()
	invitees.On("UpdateInvitee", ctx, child2.UpdateParams()).Return(child2, nil).Once()

	want := model.NewInvitation(primary, []model.Invitee{child1, child2})
	notifier.On("EnqueueRSVPUpdated", ctx, want).Return(nil).Once()

	svc := NewInvitationService(invitees, &mockRelations{}, notifier)
	got, err := svc.UpdateInvitation(ctx, want)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	invitees.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateInvitation_ReturnsStoredRows(t *testing.T) {
	invitees := &mockInvitees{}

	submitted := primary
	submitted.FirstName = "Changed"
	invitees.On("UpdateInvitee", ctx, submitted.UpdateParams()).Return(primary, nil).Once()

	svc := NewInvitationService(invitees, &mockRelations{}, nil)
	got, err := svc.UpdateInvitation(ctx, model.NewInvitation(submitted, nil))
	require.NoError(t, err)

	assert.Equal(t, "Pat", got.PrimaryInvitee.FirstName)
	assert.Empty(t, got.Dependents)
}

func TestUpdateInvitation_FirstErrorAborts(t *testing.T) {
	invitees := &mockInvitees{}
	notifier := &mockNotifier{}
	notFound := &sqlerr.NotFoundError{Entity: "invitee", ID: "c1"}

	invitees.On("UpdateInvitee", ctx, primary.UpdateParams()).Return(primary, nil).Once()
	invitees.On("UpdateInvitee", ctx, child1.UpdateParams()).Return(model.Invitee{}, notFound).Once()

	svc := NewInvitationService(invitees, &mockRelations{}, notifier)
	_, err := svc.UpdateInvitation(ctx, model.NewInvitation(primary, []model.Invitee{child1, child2}))

	var nf *sqlerr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "c1", nf.ID)
	invitees.AssertNotCalled(t, "UpdateInvitee", mock.Anything, child2.UpdateParams())
	notifier.AssertNotCalled(t, "EnqueueRSVPUpdated", mock.Anything, mock.Anything)
}

func TestUpdateInvitation_DependentDBFailureAfterPrimaryWrite(t *testing.T) {
	invitees := &mockInvitees{}
	notifier := &mockNotifier{}
	failure := sqlerr.Failure(errors.New("connection reset by peer"), "UpdateInvitee")

	invitees.On("UpdateInvitee", ctx, primary.UpdateParams()).Return(primary, nil).Once()
	invitees.On("UpdateInvitee", ctx, child1.UpdateParams()).Return(model.Invitee{}, failure).Once()

	svc := NewInvitationService(invitees, &mockRelations{}, notifier)
	got, err := svc.UpdateInvitation(ctx, model.NewInvitation(primary, []model.Invitee{child1, child2}))
	require.Error(t, err)

	assert.True(t, sqlerr.IsDBFailure(err))
	assert.Equal(t, model.Invitation{}, got)
	invitees.AssertExpectations(t)
	invitees.AssertNotCalled(t, "UpdateInvitee", mock.Anything, child2.UpdateParams())
	notifier.AssertNotCalled(t, "EnqueueRSVPUpdated", mock.Anything, mock.Anything)
}

func TestUpdateInvitation_EnqueueFailureIsIgnored(t *testing.T) {
	invitees := &mockInvitees{}
	notifier := &mockNotifier{}

	invitees.On("UpdateInvitee", ctx, primary.UpdateParams()).Return(primary, nil).Once()
	notifier.On("EnqueueRSVPUpdated", ctx, mock.Anything).Return(errors.New("redis unavailable")).Once()

	svc := NewInvitationService(invitees, &mockRelations{}, notifier)
	_, err := svc.UpdateInvitation(ctx, model.NewInvitation(primary, nil))
	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}
