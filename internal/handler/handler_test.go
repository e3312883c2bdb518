package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bounties-api/internal/domain"
	"bounties-api/internal/middleware"
	"bounties-api/internal/mocks"
	"bounties-api/internal/service"
	"bounties-api/internal/service/auth"
	"bounties-api/internal/service/notification"
	"bounties-api/internal/service/transaction"
)

const testSecret = "handler-secret"

type testEnv struct {
	app       *fiber.App
	notifRepo *mocks.NotificationRepository
	txRepo    *mocks.TransactionRepository
	userRepo  *mocks.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		notifRepo: new(mocks.NotificationRepository),
		txRepo:    new(mocks.TransactionRepository),
		userRepo:  new(mocks.UserRepository),
	}

	services := &service.Services{
		Notification: notification.NewService(env.notifRepo, nil, nil),
		Transaction:  transaction.NewService(env.txRepo, env.userRepo, nil, nil, nil),
	}
	handlers := &Handlers{
		Notification: NewNotificationHandler(services.Notification),
		Transaction:  NewTransactionHandler(services.Transaction),
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	SetupRoutes(env.app, handlers, auth.NewService(testSecret))
	return env
}

func (e *testEnv) do(t *testing.T, method, path, caller, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if caller != "" {
		token, err := auth.IssueToken(testSecret, caller, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

func TestTransactionRoutes(t *testing.T) {
	t.Run("List Unviewed Newest First", func(t *testing.T) {
		env := newTestEnv(t)
		t1 := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
		t2 := t1.Add(time.Hour)
		env.txRepo.On("List", mock.Anything, domain.TransactionFilter{OwnerAddress: "0xabc"}, mock.Anything).
			Return([]domain.Transaction{{ID: 2, Created: t2}, {ID: 1, Created: t1}}, int64(2), nil).Once()

		status, body := env.do(t, fiber.MethodGet, "/api/v1/transaction/user/0xabc", "", "")

		require.Equal(t, fiber.StatusOK, status)
		var page domain.PaginatedResponse[domain.Transaction]
		require.NoError(t, json.Unmarshal([]byte(body), &page))
		require.Len(t, page.Data, 2)
		assert.Equal(t, int64(2), page.Data[0].ID)
		assert.Equal(t, int64(1), page.Data[1].ID)
	})

	t.Run("Mark Viewed", func(t *testing.T) {
		env := newTestEnv(t)
		env.txRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Transaction{ID: 3, OwnerAddress: "0xabc"}, nil).Once()
		env.txRepo.On("MarkViewed", mock.Anything, int64(3)).Return(nil).Once()

		status, body := env.do(t, fiber.MethodGet, "/api/v1/transaction/viewed/3", "0xabc", "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "success", body)
	})

	t.Run("Mark Viewed Not Found", func(t *testing.T) {
		env := newTestEnv(t)
		env.txRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound).Once()

		status, _ := env.do(t, fiber.MethodGet, "/api/v1/transaction/viewed/404", "0xabc", "")

		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("Mark Viewed Anonymous", func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, fiber.MethodGet, "/api/v1/transaction/viewed/3", "", "")

		assert.Equal(t, fiber.StatusUnauthorized, status)
		env.txRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Mark Viewed Invalid ID", func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, fiber.MethodGet, "/api/v1/transaction/viewed/abc", "0xabc", "")

		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Create For Other Identity", func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, fiber.MethodPost, "/api/v1/transaction/user/0xdef", "0xabc", `{"tx_hash":"0x1"}`)

		assert.Equal(t, fiber.StatusForbidden, status)
		env.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Create Missing Hash", func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, fiber.MethodPost, "/api/v1/transaction/user/0xabc", "0xabc", `{}`)

		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	})
}

func TestNotificationRoutes(t *testing.T) {
	t.Run("List Push", func(t *testing.T) {
		env := newTestEnv(t)
		filter := domain.NotificationFilter{OwnerAddress: "0xabc", Category: domain.CategoryPush}
		env.notifRepo.On("List", mock.Anything, filter, mock.Anything).
			Return([]domain.DashboardNotification{{ID: 8, String: "Your bounty expired"}}, int64(1), nil).Once()

		status, body := env.do(t, fiber.MethodGet, "/api/v1/notification/push/user/0xABC", "", "")

		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, "Your bounty expired")
	})

	t.Run("Unviewed Count", func(t *testing.T) {
		env := newTestEnv(t)
		filter := domain.NotificationFilter{OwnerAddress: "0xabc", Category: domain.CategoryActivity}
		env.notifRepo.On("Count", mock.Anything, filter).Return(int64(4), nil).Once()

		status, body := env.do(t, fiber.MethodGet, "/api/v1/notification/activity/user/0xabc/unviewed-count", "", "")

		require.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"count":4}`, body)
	})

	t.Run("Mark All For Other Identity", func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, fiber.MethodGet, "/api/v1/notification/activity/viewed/user/0xdef", "0xabc", "")

		assert.Equal(t, fiber.StatusForbidden, status)
		env.notifRepo.AssertNotCalled(t, "MarkAllViewed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Mark All Push", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifRepo.On("MarkAllViewed", mock.Anything, "0xabc", domain.CategoryPush).Return(int64(2), nil).Once()

		status, body := env.do(t, fiber.MethodGet, "/api/v1/notification/push/viewed/user/0xabc", "0xabc", "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "success", body)
		env.notifRepo.AssertExpectations(t)
	})

	t.Run("Mark Viewed Not Owner", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifRepo.On("GetByID", mock.Anything, int64(9)).Return(&domain.DashboardNotification{ID: 9, OwnerAddress: "0xdef"}, nil).Once()

		status, _ := env.do(t, fiber.MethodGet, "/api/v1/notification/viewed/9", "0xabc", "")

		assert.Equal(t, fiber.StatusForbidden, status)
		env.notifRepo.AssertNotCalled(t, "MarkViewed", mock.Anything, mock.Anything)
	})
}
