// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"nhooyr.io/websocket"
)

// Watch dials the document's websocket feed. The server pushes the current
// snapshot immediately after the upgrade and a fresh one after every write to
// the document. The read loop is a single goroutine, so callbacks are
// delivered sequentially in arrival order.
func (h *httpDocumentStore) Watch(ctx context.Context, ref DocumentRef, fn func(Snapshot)) (func(), error) {
	const op = "remote.Watch"

	wsURL, err := h.watchURL(ref)
	if err != nil {
		return nil, NewError(CodeInvalidArgument, op, err)
	}

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, mapTransportError(op, err)
	}
	// Snapshots are small; the default 32KB read limit is too tight for a
	// favorites array with long texts.
	conn.SetReadLimit(1 << 20)

	loopCtx, cancel := context.WithCancel(ctx)
	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			_ = conn.Close(websocket.StatusNormalClosure, "listener detached")
		})
	}

	go h.readSnapshots(loopCtx, conn, ref, fn)

	return stop, nil
}

func (h *httpDocumentStore) readSnapshots(ctx context.Context, conn *websocket.Conn, ref DocumentRef, fn func(Snapshot)) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() == nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				h.logger.Warn().Err(err).
					Str("collection", ref.Collection).
					Str("doc_id", ref.DocID).
					Msg("watch feed closed")
			}
			return
		}

		var snap Snapshot
		if err = json.Unmarshal(data, &snap); err != nil {
			h.logger.Warn().Err(err).Msg("watch feed sent malformed snapshot, skipping")
			continue
		}

		fn(snap)
	}
}

func (h *httpDocumentStore) watchURL(ref DocumentRef) (string, error) {
	base := h.client.BaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return "", fmt.Errorf("unsupported base url scheme: %s", base)
	}

	u := base + docPath(ref) + "/watch"
	if token := h.Token(); token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u, nil
}
