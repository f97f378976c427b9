package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/identity"
	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/remote"
	"github.com/mkravets/sayright/internal/speech"
	"github.com/mkravets/sayright/internal/store"
	"github.com/mkravets/sayright/internal/syncer"
	"github.com/mkravets/sayright/internal/workers"
	"github.com/mkravets/sayright/models"
)

// App is the assembled client runtime. Collections start in anonymous mode
// backed by the local mirror; a restored or freshly established session
// switches them to the user's remote document.
type App struct {
	Favorites *syncer.Collection[models.Favorite]
	Tags      *syncer.Collection[models.Tag]
	Speech    *speech.Client

	cfg      *config.ClientConfig
	log      *logger.Logger
	kv       store.KV
	identity *identity.Provider
	remote   remote.Client
	conn     remote.Connection
	retry    *syncer.Retryer

	refreshJob *workers.RefreshJob

	mu       sync.Mutex
	settings *syncer.SettingsSync
}

// NewApp builds the runtime from the merged client configuration.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	kv, err := store.NewKV(cfg.Local, log)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}

	remoteClient := remote.NewHTTPDocumentStore(remote.HTTPClientConfig{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.RequestTimeout,
	}, log)
	conn := remote.NewConnection(cfg.Remote.BaseURL, cfg.Remote.RequestTimeout, log)
	retry := syncer.NewRetryer(syncer.RetryOptions{
		MaxRetries: cfg.Sync.MaxRetries,
		BaseDelay:  cfg.Sync.BaseDelay,
		MaxDelay:   cfg.Sync.MaxDelay,
	}, log)

	app := &App{
		Favorites: syncer.NewCollection[models.Favorite](models.FavoritesField, models.FavoritesField, kv, remoteClient, conn, retry, log),
		Tags:      syncer.NewCollection[models.Tag](models.TagsField, models.TagsField, kv, remoteClient, conn, retry, log),
		Speech: speech.NewClient(speech.Config{
			BaseURL: cfg.Speech.BaseURL,
			APIKey:  cfg.Speech.APIKey,
			Timeout: cfg.Speech.RequestTimeout,
		}, log),
		cfg:      cfg,
		log:      log,
		kv:       kv,
		identity: identity.NewProvider(kv, log),
		remote:   remoteClient,
		conn:     conn,
		retry:    retry,
		settings: syncer.NewSettingsSync("", kv, remoteClient, conn, retry, log),
	}

	return app, nil
}

// Start restores a stored session, if any, and launches the background
// refresh job. A dead or unreachable session is not fatal: collections stay
// on the local mirror and the next refresh retries.
func (a *App) Start(ctx context.Context) error {
	if token, err := a.identity.Token(); err == nil {
		a.remote.SetToken(token)
		if err = a.adoptIdentity(ctx, a.identity.UID()); err != nil {
			a.log.Warn().Err(err).Msg("session restore incomplete, continuing with local mirror")
		}
	} else if !errors.Is(err, store.ErrSessionNotFound) {
		return fmt.Errorf("restore session: %w", err)
	}

	// the settings binding is rebuilt on identity changes, so the job goes
	// through an indirection that always resolves the active one
	a.refreshJob = workers.NewRefreshJob(a.cfg.Sync.RefreshInterval, a.log,
		a.Favorites, a.Tags, settingsRefresher{app: a})
	a.refreshJob.Start(ctx)

	return nil
}

type settingsRefresher struct{ app *App }

func (r settingsRefresher) Refresh(ctx context.Context) error {
	return r.app.Settings().Refresh(ctx)
}

// Register creates an account, stores the session, and switches all
// collections to the new identity.
func (a *App) Register(ctx context.Context, login, password string) error {
	token, err := a.remote.Register(ctx, models.User{Login: login, Password: password})
	if err != nil {
		return err
	}
	return a.establishSession(ctx, token)
}

// Login authenticates, stores the session, and switches all collections to
// the authenticated identity. Remote state supersedes anonymous local data;
// the two are not merged.
func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.remote.Login(ctx, models.User{Login: login, Password: password})
	if err != nil {
		return err
	}
	return a.establishSession(ctx, token)
}

// Logout drops the session and returns all collections to anonymous mode.
func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.remote.SetToken("")
	return a.adoptIdentity(ctx, "")
}

// UID returns the current identity, empty when anonymous.
func (a *App) UID() string {
	return a.identity.UID()
}

// Settings returns the active settings binding.
func (a *App) Settings() *syncer.SettingsSync {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Close stops the refresh job and tears down all listeners.
func (a *App) Close() {
	if a.refreshJob != nil {
		a.refreshJob.Stop()
	}
	a.Favorites.Close()
	a.Tags.Close()
	a.Settings().Unsubscribe()
}

func (a *App) establishSession(ctx context.Context, token models.Token) error {
	if err := a.identity.SetSession(token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return a.adoptIdentity(ctx, a.identity.UID())
}

// adoptIdentity switches every binding to uid. The settings binding carries
// its uid by value, so it is rebuilt rather than switched.
func (a *App) adoptIdentity(ctx context.Context, uid string) error {
	if err := a.Favorites.SetIdentity(ctx, uid); err != nil {
		return fmt.Errorf("switch favorites: %w", err)
	}
	if err := a.Tags.SetIdentity(ctx, uid); err != nil {
		return fmt.Errorf("switch tags: %w", err)
	}

	a.mu.Lock()
	prev := a.settings
	a.settings = syncer.NewSettingsSync(uid, a.kv, a.remote, a.conn, a.retry, a.log)
	next := a.settings
	a.mu.Unlock()

	prev.Unsubscribe()

	if uid == "" {
		return nil
	}
	if err := next.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh settings: %w", err)
	}
	if err := next.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe settings: %w", err)
	}

	return nil
}
