package syncer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/mock"
	"github.com/mkravets/sayright/internal/remote"
	"github.com/mkravets/sayright/internal/store"
	"github.com/mkravets/sayright/models"
)

func newTestSettings(t *testing.T, ctrl *gomock.Controller, uid string) (*SettingsSync, store.KV, *mock.MockDocumentStore, *mock.MockConnection) {
	t.Helper()

	kv, err := store.NewFileKV(":memory:")
	require.NoError(t, err)

	docs := mock.NewMockDocumentStore(ctrl)
	conn := mock.NewMockConnection(ctrl)

	retry := NewRetryer(RetryOptions{}, logger.Nop())
	s := NewSettingsSync(uid, kv, docs, conn, retry, logger.Nop())

	return s, kv, docs, conn
}

func TestSettingsSync_DefaultsWhenUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, _, _ := newTestSettings(t, ctrl, "")

	assert.Equal(t, DefaultSettings(), s.Current())
}

func TestSettingsSync_AnonymousSaveIsLocalOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, kv, _, _ := newTestSettings(t, ctrl, "")

	want := models.Settings{DailyGoal: 20, PlaybackRate: 0.75, ShowPhonemes: false, Locale: "en-GB"}
	require.NoError(t, s.Save(context.Background(), want))

	assert.Equal(t, want, s.Current())

	raw, ok, err := kv.GetItem(models.SettingsField)
	require.NoError(t, err)
	require.True(t, ok)

	var stored models.Settings
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, want, stored)
}

func TestSettingsSync_AuthenticatedSaveMergesRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, docs, conn := newTestSettings(t, ctrl, "u1")
	conn.EXPECT().EnsureNetworkEnabled(gomock.Any()).Return(nil).AnyTimes()

	var gotFields map[string]json.RawMessage
	docs.EXPECT().
		SetMerge(gomock.Any(), remote.DocumentRef{Collection: models.UsersCollection, DocID: "u1"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ remote.DocumentRef, fields map[string]json.RawMessage) error {
			gotFields = fields
			return nil
		})

	want := models.Settings{DailyGoal: 5, PlaybackRate: 1.25, ShowPhonemes: true, Locale: "en-US"}
	require.NoError(t, s.Save(context.Background(), want))

	var sent models.Settings
	require.NoError(t, json.Unmarshal(gotFields[models.SettingsField], &sent))
	assert.Equal(t, want, sent)
	assert.Contains(t, gotFields, models.UpdatedAtField)
}

func TestSettingsSync_SaveFailureIsOptimistic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, docs, conn := newTestSettings(t, ctrl, "u1")
	conn.EXPECT().EnsureNetworkEnabled(gomock.Any()).Return(nil).AnyTimes()

	failure := remote.NewError(remote.CodeUnavailable, "remote.SetMerge", nil)
	docs.EXPECT().SetMerge(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure).Times(4)

	want := models.Settings{DailyGoal: 7, PlaybackRate: 1, ShowPhonemes: true}
	err := s.Save(context.Background(), want)

	require.ErrorIs(t, err, failure)
	assert.Equal(t, want, s.Current(), "local state keeps the attempted value")
}

func TestSettingsSync_RefreshOverwritesFromRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, docs, conn := newTestSettings(t, ctrl, "u1")
	conn.EXPECT().EnsureNetworkEnabled(gomock.Any()).Return(nil).AnyTimes()

	snap := remote.Snapshot{Exists: true, Fields: map[string]json.RawMessage{
		models.SettingsField: json.RawMessage(`{"dailyGoal":30,"playbackRate":0.5,"showPhonemes":false,"locale":"en-AU"}`),
	}}
	docs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(snap, nil)

	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, models.Settings{DailyGoal: 30, PlaybackRate: 0.5, ShowPhonemes: false, Locale: "en-AU"}, s.Current())
}

func TestSettingsSync_RefreshAbsentDocumentKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, docs, conn := newTestSettings(t, ctrl, "u1")
	conn.EXPECT().EnsureNetworkEnabled(gomock.Any()).Return(nil).AnyTimes()

	docs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(remote.Snapshot{Exists: false}, nil)

	before := s.Current()
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, before, s.Current())
}

func TestSettingsSync_SubscribeAppliesSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, docs, conn := newTestSettings(t, ctrl, "u1")
	conn.EXPECT().EnsureNetworkEnabled(gomock.Any()).Return(nil).AnyTimes()

	var callback func(remote.Snapshot)
	docs.EXPECT().
		Watch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ remote.DocumentRef, fn func(remote.Snapshot)) (func(), error) {
			callback = fn
			return func() {}, nil
		})

	require.NoError(t, s.Subscribe(context.Background()))

	callback(remote.Snapshot{Exists: true, Fields: map[string]json.RawMessage{
		models.SettingsField: json.RawMessage(`{"dailyGoal":15,"playbackRate":1,"showPhonemes":true}`),
	}})

	assert.Equal(t, 15, s.Current().DailyGoal)

	// snapshot without a settings field leaves state alone
	callback(remote.Snapshot{Exists: true, Fields: map[string]json.RawMessage{}})
	assert.Equal(t, 15, s.Current().DailyGoal)
}
