package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/mock"
	"github.com/mkravets/sayright/internal/server/docstore"
	"github.com/mkravets/sayright/internal/service"
	"github.com/mkravets/sayright/models"
)

// newWatchFixture wires a real document service (repository mocked) behind
// the handler so the websocket feed exercises the actual hub.
func newWatchFixture(t *testing.T) (*httptest.Server, service.DocumentService, *mock.MockDocumentRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	repo := mock.NewMockDocumentRepository(ctrl)
	docs := service.NewDocumentService(repo, logger.Nop())

	expectSession(auth, "tok-u1", "u1")

	h := NewHandler(&service.Services{AuthService: auth, DocumentService: docs}, logger.Nop())
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return srv, docs, repo
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func readSnapshot(t *testing.T, ctx context.Context, conn *websocket.Conn) snapshotResponse {
	t.Helper()

	var snap snapshotResponse
	require.NoError(t, wsjson.Read(ctx, conn, &snap))
	return snap
}

func TestHandler_WatchDocument_InitialAndMergedSnapshots(t *testing.T) {
	srv, docs, repo := newWatchFixture(t)

	// документа ещё нет — первый кадр exists=false
	repo.EXPECT().
		GetDocument(gomock.Any(), models.UsersCollection, "u1").
		Return(models.Document{}, docstore.ErrDocumentNotFound)

	merged := models.Document{
		Collection: models.UsersCollection,
		DocID:      "u1",
		Fields:     map[string]json.RawMessage{models.FavoritesField: json.RawMessage(`[{"id":"f1"}]`)},
		UpdatedAt:  time.Now(),
	}
	repo.EXPECT().
		MergeDocument(gomock.Any(), models.UsersCollection, "u1", gomock.Any()).
		Return(merged, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, "/api/docs/users/u1/watch?token=tok-u1"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	initial := readSnapshot(t, ctx, conn)
	assert.False(t, initial.Exists)

	_, err = docs.MergeDocument(ctx, models.UsersCollection, "u1",
		map[string]json.RawMessage{models.FavoritesField: json.RawMessage(`[{"id":"f1"}]`)})
	require.NoError(t, err)

	pushed := readSnapshot(t, ctx, conn)
	assert.True(t, pushed.Exists)
	assert.JSONEq(t, `[{"id":"f1"}]`, string(pushed.Fields[models.FavoritesField]))
}

func TestHandler_WatchDocument_ExistingDocumentPushedOnConnect(t *testing.T) {
	srv, _, repo := newWatchFixture(t)

	repo.EXPECT().
		GetDocument(gomock.Any(), models.UsersCollection, "u1").
		Return(models.Document{
			Collection: models.UsersCollection,
			DocID:      "u1",
			Fields:     map[string]json.RawMessage{models.TagsField: json.RawMessage(`[]`)},
			UpdatedAt:  time.Now(),
		}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, "/api/docs/users/u1/watch?token=tok-u1"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	initial := readSnapshot(t, ctx, conn)
	assert.True(t, initial.Exists)
	assert.JSONEq(t, `[]`, string(initial.Fields[models.TagsField]))
}

func TestHandler_WatchDocument_RequiresToken(t *testing.T) {
	srv, _, _ := newWatchFixture(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, wsURL(srv, "/api/docs/users/u1/watch"), nil)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 401, resp.StatusCode)
	}
}
