package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/mock"
	"github.com/mkravets/sayright/internal/server/docstore"
	"github.com/mkravets/sayright/internal/service"
	"github.com/mkravets/sayright/models"
)

func newTestHandler(t *testing.T) (*Handler, *mock.MockAuthService, *mock.MockDocumentService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	docs := mock.NewMockDocumentService(ctrl)

	h := NewHandler(&service.Services{
		AuthService:     auth,
		DocumentService: docs,
	}, logger.Nop())

	return h, auth, docs
}

func TestHandler_Health(t *testing.T) {
	h, _, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Register(t *testing.T) {
	h, auth, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	auth.EXPECT().
		RegisterUser(gomock.Any(), models.User{Login: "john", Password: "secret"}).
		Return(models.User{UID: "u1", Login: "john"}, nil)
	auth.EXPECT().
		CreateToken(gomock.Any(), models.User{UID: "u1", Login: "john"}).
		Return(models.Token{SignedString: "signed-token", UID: "u1"}, nil)

	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json",
		strings.NewReader(`{"login":"john","password":"secret"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer signed-token", resp.Header.Get("Authorization"))
}

func TestHandler_Register_DuplicateLogin(t *testing.T) {
	h, auth, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	auth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, docstore.ErrLoginAlreadyExists)

	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json",
		strings.NewReader(`{"login":"john","password":"secret"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_Register_InvalidJSON(t *testing.T) {
	h, _, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json",
		strings.NewReader(`{"login":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Login(t *testing.T) {
	h, auth, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	auth.EXPECT().
		Login(gomock.Any(), models.User{Login: "john", Password: "secret"}).
		Return(models.User{UID: "u1", Login: "john"}, nil)
	auth.EXPECT().
		CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{SignedString: "signed-token", UID: "u1"}, nil)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"login":"john","password":"secret"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer signed-token", resp.Header.Get("Authorization"))
}

func TestHandler_Login_WrongCredentials(t *testing.T) {
	h, auth, _ := newTestHandler(t)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	auth.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrWrongPassword)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"login":"john","password":"guess"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
