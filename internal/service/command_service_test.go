package service

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/latch-net/latch-be/internal/controller"
	"github.com/latch-net/latch-be/internal/dispatch"
	"github.com/latch-net/latch-be/internal/metrics"
	"github.com/latch-net/latch-be/internal/model"
)

type mockCommandRepository struct {
	mock.Mock
}

func (m *mockCommandRepository) Create(ctx context.Context, record *model.CommandRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockCommandRepository) GetByUserID(ctx context.Context, userID int) ([]*model.CommandRecord, error) {
	args := m.Called(ctx, userID)
	if records, ok := args.Get(0).([]*model.CommandRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

type commandServiceFixture struct {
	service    ICommandService
	dispatcher *dispatch.Dispatcher
	repo       *mockCommandRepository
	server     *httptest.Server
	lastPath   *string
	lastBody   *string
	lastMethod *string
}

func newCommandServiceFixture(t *testing.T, limiter *rate.Limiter, status int, responseBody string) *commandServiceFixture {
	t.Helper()

	var lastPath, lastBody, lastMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		lastMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		lastBody = string(raw)
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	logger := log.New(io.Discard, "", 0)
	conn := dispatch.NewConnectionConfig(u.Hostname(), port, "/", logger)
	msg := dispatch.NewMessageConfig("{}", logger)
	d := dispatch.NewDispatcher(ts.Client(), conn, msg, logger)

	repo := new(mockCommandRepository)
	measures := metrics.NewCommandMeasures(prometheus.NewRegistry())

	return &commandServiceFixture{
		service:    NewCommandService(d, controller.NewLockController(d), repo, limiter, measures, logger),
		dispatcher: d,
		repo:       repo,
		server:     ts,
		lastPath:   &lastPath,
		lastBody:   &lastBody,
		lastMethod: &lastMethod,
	}
}

func TestCommandServiceLock(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusOK, `{"result":"locked"}`)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.CommandRecord) bool {
		return rec.Action == model.ActionLock &&
			rec.Method == http.MethodPost &&
			rec.Success &&
			rec.UserID != nil && *rec.UserID == 42
	})).Return(nil)

	result, err := f.service.Lock(context.Background(), 42)
	require.NoError(err)

	assert.Equal(model.ActionLock, result.Action)
	assert.True(result.Success)
	assert.Equal(`{"result":"locked"}`, result.Message)
	assert.Equal("/api/lock", *f.lastPath)
	assert.Equal(`{"action": "lock"}`, *f.lastBody)
	f.repo.AssertExpectations(t)
}

func TestCommandServiceUnlock(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusOK, `{"result":"unlocked"}`)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.CommandRecord) bool {
		return rec.Action == model.ActionUnlock && rec.Success
	})).Return(nil)

	result, err := f.service.Unlock(context.Background(), 42)
	require.NoError(err)

	assert.True(result.Success)
	assert.Equal("/api/unlock", *f.lastPath)
	assert.Equal(`{"action": "unlock"}`, *f.lastBody)
	f.repo.AssertExpectations(t)
}

func TestCommandServiceSendOverrides(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusOK, "ok")
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.CommandRecord) bool {
		return rec.Action == model.ActionCustom && rec.Method == http.MethodPut
	})).Return(nil)

	result, err := f.service.Send(context.Background(), 42, &model.DTOSendRequest{
		Path:    "api/custom",
		Payload: `{"custom": true}`,
		Method:  "put",
	})
	require.NoError(err)

	assert.True(result.Success)
	assert.Equal("/api/custom", *f.lastPath)
	assert.Equal(http.MethodPut, *f.lastMethod)
	assert.Equal(`{"custom": true}`, *f.lastBody)

	// Overrides never leak into the stored device defaults.
	assert.Equal("/", f.dispatcher.Connection().Path())
	assert.Equal("{}", f.dispatcher.Message().Payload())
	f.repo.AssertExpectations(t)
}

func TestCommandServiceSendRejectsUnsupportedMethod(t *testing.T) {
	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusOK, "ok")

	_, err := f.service.Send(context.Background(), 42, &model.DTOSendRequest{
		Path:    "/api/custom",
		Payload: "{}",
		Method:  "TRACE",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, *f.lastPath, "no dispatch may happen for an unsupported method")
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommandServiceRateLimited(t *testing.T) {
	f := newCommandServiceFixture(t, rate.NewLimiter(0, 0), http.StatusOK, "ok")

	_, err := f.service.Lock(context.Background(), 42)

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Empty(t, *f.lastPath)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommandServiceDeviceFailureRecorded(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusBadGateway, "device offline")
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *model.CommandRecord) bool {
		return rec.Action == model.ActionLock && !rec.Success
	})).Return(nil)

	result, err := f.service.Lock(context.Background(), 42)
	require.NoError(err, "a device-side failure is a result, not a service error")

	assert.False(result.Success)
	assert.Contains(result.Message, "device offline")
	f.repo.AssertExpectations(t)
}

func TestCommandServiceHistoryFailureDoesNotHideResult(t *testing.T) {
	require := require.New(t)

	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusOK, "ok")
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	result, err := f.service.Lock(context.Background(), 42)
	require.NoError(err)
	require.True(result.Success)
}

func TestCommandServiceHistory(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	f := newCommandServiceFixture(t, rate.NewLimiter(rate.Inf, 1), http.StatusOK, "ok")
	want := []*model.CommandRecord{
		{ID: 1, Action: model.ActionLock, Success: true, ExecutedAt: time.Now()},
	}
	f.repo.On("GetByUserID", mock.Anything, 42).Return(want, nil)

	records, err := f.service.History(context.Background(), 42)
	require.NoError(err)
	assert.Equal(want, records)
	f.repo.AssertExpectations(t)
}
