package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
)

// MockGateway is a mock implementation of the Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockGateway) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockGateway) Update(ctx context.Context, id int64, u domain.User) (*domain.User, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockGateway) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestReconciler(t *testing.T) (*Reconciler, *MockGateway) {
	gw := new(MockGateway)
	r := New(gw, zaptest.NewLogger(t))
	return r, gw
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"},
		{ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net"},
	}
}

// ==================== LOAD ====================

func TestLoad_Success(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)

	err := r.Load(ctx)

	assert.NoError(t, err)
	assert.Len(t, r.Users(), 3)
	assert.Equal(t, ActionNone, r.Action())
	assert.Empty(t, r.LoadError())
	require.NotNil(t, r.Alert())
	assert.Equal(t, SeveritySuccess, r.Alert().Severity)
	assert.Equal(t, "Users loaded successfully", r.Alert().Message)

	gw.AssertExpectations(t)
}

func TestLoad_FailureKeepsPreviousList(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil).Once()
	require.NoError(t, r.Load(ctx))

	gw.On("List", ctx).Return(nil, errors.New("connection refused")).Once()
	err := r.Load(ctx)

	assert.Error(t, err)
	assert.Len(t, r.Users(), 3, "previous list must stay untouched")
	assert.Equal(t, ActionNone, r.Action())
	assert.Equal(t, "Failed to fetch users. Please try again.", r.LoadError())
	require.NotNil(t, r.Alert())
	assert.Equal(t, SeverityError, r.Alert().Severity)
}

func TestLoad_SuccessClearsErrorBanner(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(nil, errors.New("boom")).Once()
	_ = r.Load(ctx)
	require.NotEmpty(t, r.LoadError())

	gw.On("List", ctx).Return(seedUsers(), nil).Once()
	require.NoError(t, r.Load(ctx))
	assert.Empty(t, r.LoadError())
}

// ==================== ADD ====================

func TestAdd_SuccessAppendsWithTimestampID(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	draft := domain.User{Name: "Bob", Username: "bob1", Email: "bob@x.com"}
	gw.On("Create", ctx, draft).Return(&domain.User{ID: 11, Name: "Bob", Username: "bob1", Email: "bob@x.com"}, nil)

	err := r.Add(ctx, draft)

	assert.NoError(t, err)
	require.Len(t, r.Users(), 4)
	appended := r.Users()[3]
	assert.Equal(t, fixed.UnixMilli(), appended.ID, "server id is overridden locally")
	assert.Equal(t, "Bob", appended.Name)
	require.NotNil(t, r.Alert())
	assert.Equal(t, SeveritySuccess, r.Alert().Severity)
	assert.Contains(t, r.Alert().Message, "Bob")
	assert.Equal(t, ActionNone, r.Action())

	gw.AssertExpectations(t)
}

func TestAdd_FailureLeavesListUnchanged(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	draft := domain.User{Name: "Bob", Username: "bob1", Email: "bob@x.com"}
	gw.On("Create", ctx, draft).Return(nil, errors.New("timeout"))

	err := r.Add(ctx, draft)

	assert.Error(t, err)
	assert.Len(t, r.Users(), 3)
	require.NotNil(t, r.Alert())
	assert.Equal(t, SeverityError, r.Alert().Severity)
	assert.Equal(t, "Failed to add user", r.Alert().Message)
	assert.Equal(t, ActionNone, r.Action())
}

func TestBeginAdd_EmitsInfoAlertImmediately(t *testing.T) {
	r, _ := setupTestReconciler(t)

	require.NoError(t, r.BeginAdd())

	assert.Equal(t, ActionAdding, r.Action())
	require.NotNil(t, r.Alert())
	assert.Equal(t, SeverityInfo, r.Alert().Severity)
	assert.Equal(t, "Adding new user...", r.Alert().Message)
	assert.Equal(t, "adding", r.Alert().Action)
}

// ==================== EDIT ====================

func TestEdit_SuccessReplacesMatchingEntry(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	edited := domain.User{ID: 2, Name: "Robert", Username: "Antonette", Email: "Shanna@melissa.tv"}
	gw.On("Update", ctx, int64(2), edited).Return(&edited, nil)

	err := r.Edit(ctx, edited)

	assert.NoError(t, err)
	require.Len(t, r.Users(), 3)
	assert.Equal(t, "Robert", r.Users()[1].Name)
	assert.Equal(t, "Leanne Graham", r.Users()[0].Name, "other entries unchanged")
	assert.Equal(t, "Clementine Bauch", r.Users()[2].Name)
	require.NotNil(t, r.Alert())
	assert.Contains(t, r.Alert().Message, "Robert")
}

func TestEdit_FailureLeavesListUnchanged(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	edited := domain.User{ID: 2, Name: "Robert"}
	gw.On("Update", ctx, int64(2), edited).Return(nil, errors.New("boom"))

	err := r.Edit(ctx, edited)

	assert.Error(t, err)
	assert.Equal(t, "Ervin Howell", r.Users()[1].Name)
	assert.Equal(t, ActionNone, r.Action())
}

// ==================== DELETE ====================

func TestDelete_SuccessRemovesByID(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	gw.On("Delete", ctx, int64(2)).Return(nil)

	err := r.Remove(ctx, domain.User{ID: 2, Name: "Ervin Howell"})

	assert.NoError(t, err)
	require.Len(t, r.Users(), 2)
	for _, u := range r.Users() {
		assert.NotEqual(t, int64(2), u.ID)
	}
}

func TestDelete_AbsentIDIsListNoopButStillSucceeds(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	gw.On("Delete", ctx, int64(99)).Return(nil)

	err := r.Remove(ctx, domain.User{ID: 99, Name: "Ghost"})

	assert.NoError(t, err)
	assert.Len(t, r.Users(), 3)
	require.NotNil(t, r.Alert())
	assert.Equal(t, SeveritySuccess, r.Alert().Severity)
}

func TestDelete_FailureLeavesListUnchanged(t *testing.T) {
	r, gw := setupTestReconciler(t)
	ctx := context.Background()

	gw.On("List", ctx).Return(seedUsers(), nil)
	require.NoError(t, r.Load(ctx))

	gw.On("Delete", ctx, int64(2)).Return(errors.New("boom"))

	err := r.Remove(ctx, domain.User{ID: 2, Name: "Ervin Howell"})

	assert.Error(t, err)
	assert.Len(t, r.Users(), 3)
	assert.Equal(t, ActionNone, r.Action())
}

// ==================== SINGLE-FLIGHT GUARD ====================

func TestBusyGuard_RejectsSecondAction(t *testing.T) {
	r, _ := setupTestReconciler(t)

	require.NoError(t, r.BeginLoad())
	assert.True(t, r.Busy())

	assert.ErrorIs(t, r.BeginAdd(), ErrBusy)
	assert.ErrorIs(t, r.BeginUpdate("x"), ErrBusy)
	assert.ErrorIs(t, r.BeginDelete("x"), ErrBusy)
	assert.ErrorIs(t, r.BeginLoad(), ErrBusy)

	r.FinishLoad(nil, errors.New("boom"))
	assert.False(t, r.Busy(), "flag cleared on failure too")
	assert.NoError(t, r.BeginAdd())
}

// ==================== ALERTS ====================

func TestAlert_ExpiryIgnoresStaleSeq(t *testing.T) {
	r, _ := setupTestReconciler(t)

	r.FinishLoad(seedUsers(), nil)
	first := r.AlertSeq()

	r.FinishLoad(seedUsers(), nil)
	require.NotNil(t, r.Alert())

	r.ExpireAlert(first)
	assert.NotNil(t, r.Alert(), "stale timer must not clear a newer alert")

	r.ExpireAlert(r.AlertSeq())
	assert.Nil(t, r.Alert())
}

func TestAlert_EarlyDismiss(t *testing.T) {
	r, _ := setupTestReconciler(t)

	r.FinishLoad(seedUsers(), nil)
	require.NotNil(t, r.Alert())

	r.DismissAlert()
	assert.Nil(t, r.Alert())
}
