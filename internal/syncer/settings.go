package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/remote"
	"github.com/mkravets/sayright/internal/store"
	"github.com/mkravets/sayright/models"
)

// SettingsSync mirrors the scalar settings object between the local store
// and the "settings" field of the user document. Unlike the array engine
// there is no per-entity reconciliation: the whole object is replaced on
// every write and every snapshot.
type SettingsSync struct {
	uid   string
	kv    store.KV
	docs  remote.DocumentStore
	conn  remote.Connection
	retry *Retryer
	log   *logger.Logger

	mu      sync.Mutex
	current models.Settings
	unsub   func()
}

// NewSettingsSync constructs a settings mirror for uid (empty for anonymous
// mode), seeded from the local store or defaults.
func NewSettingsSync(uid string, kv store.KV, docs remote.DocumentStore, conn remote.Connection, retry *Retryer, log *logger.Logger) *SettingsSync {
	s := &SettingsSync{
		uid:   uid,
		kv:    kv,
		docs:  docs,
		conn:  conn,
		retry: retry,
		log:   fieldLogger(log, models.SettingsField),
	}
	s.current = s.loadLocal()

	return s
}

// Current returns the latest known settings.
func (s *SettingsSync) Current() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save installs the settings locally and, when authenticated, merge-writes
// them into the user document. Like the array engine the local update is
// optimistic: a failed remote write leaves the new settings applied locally
// and propagates the error.
func (s *SettingsSync) Save(ctx context.Context, settings models.Settings) error {
	if s.uid == "" {
		s.setState(settings)
		return nil
	}

	err := s.writeRemote(ctx, settings)
	s.setState(settings)

	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Refresh force-fetches the user document and overwrites local state with
// its settings field. An absent document or field keeps the current state.
// No-op in anonymous mode.
func (s *SettingsSync) Refresh(ctx context.Context) error {
	if s.uid == "" {
		return nil
	}

	if err := s.conn.EnsureNetworkEnabled(ctx); err != nil {
		return err
	}

	snap, err := WithRetry(ctx, s.retry, "refresh settings", func(ctx context.Context) (remote.Snapshot, error) {
		return s.docs.Get(ctx, s.ref())
	})
	if err != nil {
		return fmt.Errorf("refresh settings: %w", err)
	}

	if settings, ok := decodeSettings(snap); ok {
		s.setState(settings)
	}

	return nil
}

// Subscribe attaches a live listener that overwrites state with every
// snapshot carrying a settings field. At most one listener is active;
// resubscribing tears down the previous one. No-op in anonymous mode.
func (s *SettingsSync) Subscribe(ctx context.Context) error {
	if s.uid == "" {
		return nil
	}

	s.Unsubscribe()

	if err := s.conn.EnsureNetworkEnabled(ctx); err != nil {
		return err
	}

	unsub, err := s.docs.Watch(ctx, s.ref(), func(snap remote.Snapshot) {
		if settings, ok := decodeSettings(snap); ok {
			s.setState(settings)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe settings: %w", err)
	}

	s.mu.Lock()
	s.unsub = unsub
	s.mu.Unlock()

	return nil
}

// Unsubscribe detaches the current listener, if any.
func (s *SettingsSync) Unsubscribe() {
	s.mu.Lock()
	unsub := s.unsub
	s.unsub = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (s *SettingsSync) writeRemote(ctx context.Context, settings models.Settings) error {
	if err := s.conn.EnsureNetworkEnabled(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	ts, _ := json.Marshal(timeNowMilli())

	fields := map[string]json.RawMessage{
		models.SettingsField:  payload,
		models.UpdatedAtField: ts,
	}

	_, err = WithRetry(ctx, s.retry, "write settings", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.docs.SetMerge(ctx, s.ref(), fields)
	})
	return err
}

func (s *SettingsSync) setState(settings models.Settings) {
	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		s.log.Error().Err(err).Msg("encode settings mirror")
		return
	}
	if err = s.kv.SetItem(models.SettingsField, string(data)); err != nil {
		s.log.Warn().Err(err).Msg("update settings mirror")
	}
}

func (s *SettingsSync) loadLocal() models.Settings {
	settings := DefaultSettings()

	raw, ok, err := s.kv.GetItem(models.SettingsField)
	if err != nil || !ok {
		return settings
	}
	if err = json.Unmarshal([]byte(raw), &settings); err != nil {
		s.log.Warn().Err(err).Msg("settings mirror corrupt, using defaults")
		return DefaultSettings()
	}

	return settings
}

func (s *SettingsSync) ref() remote.DocumentRef {
	return remote.DocumentRef{Collection: models.UsersCollection, DocID: s.uid}
}

func decodeSettings(snap remote.Snapshot) (models.Settings, bool) {
	if !snap.Exists {
		return models.Settings{}, false
	}
	var settings models.Settings
	if !snap.Field(models.SettingsField, &settings) {
		return models.Settings{}, false
	}
	return settings, true
}

// DefaultSettings is the state of a fresh profile.
func DefaultSettings() models.Settings {
	return models.Settings{
		DailyGoal:    10,
		PlaybackRate: 1.0,
		ShowPhonemes: true,
		Locale:       "en-US",
	}
}
