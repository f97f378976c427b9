package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/server/docstore"
)

// writeTimeout bounds a single snapshot push so a stalled client cannot pin
// the watch goroutine.
const writeTimeout = 10 * time.Second

// watchDocument upgrades the request to a websocket and streams document
// snapshots: the current one immediately after the upgrade, then a fresh one
// after every merge. The watcher is registered before the initial read so a
// merge landing in between is not lost.
func (h *Handler) watchDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	collection, docID, ok := requireOwnedDocument(w, r)
	if !ok {
		return
	}

	snapshots, detach := h.services.DocumentService.WatchDocument(collection, docID)
	defer detach()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "watch terminated")

	// the read side only delivers close/ping frames; CloseRead gives us a
	// context that is cancelled when the client goes away
	ctx = conn.CloseRead(ctx)

	initial := snapshotResponse{Exists: false}
	if doc, err := h.services.DocumentService.GetDocument(ctx, collection, docID); err == nil {
		initial = snapshotOf(doc)
	} else if !errors.Is(err, docstore.ErrDocumentNotFound) {
		log.Err(err).Msg("initial snapshot read failed")
		conn.Close(websocket.StatusInternalError, "snapshot read failed")
		return
	}

	if err = writeSnapshot(ctx, conn, initial); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case doc, open := <-snapshots:
			if !open {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			if err = writeSnapshot(ctx, conn, snapshotOf(doc)); err != nil {
				log.Debug().Err(err).Msg("watch push failed, dropping watcher")
				return
			}
		}
	}
}

func writeSnapshot(ctx context.Context, conn *websocket.Conn, snap snapshotResponse) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, snap)
}
