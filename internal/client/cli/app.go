package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/itemdesk/internal/client/api"
	"github.com/dmitrijs2005/itemdesk/internal/client/config"
	"github.com/dmitrijs2005/itemdesk/internal/client/repositories/state"
	"github.com/dmitrijs2005/itemdesk/internal/client/services"
	"github.com/dmitrijs2005/itemdesk/internal/client/session"
	"github.com/dmitrijs2005/itemdesk/internal/client/storage"
	"github.com/dmitrijs2005/itemdesk/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	client  api.Client
	session *session.Session
	items   services.ItemService
	db      *sql.DB
	reader  *bufio.Reader
	Mode    Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	dbPath, err := storage.DefaultPath()
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing state database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	sess := session.New(apiClient, state.NewSQLiteRepository(db), logger)
	items := services.NewItemService(apiClient, sess)

	return &App{
		config:  c,
		client:  apiClient,
		session: sess,
		items:   items,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// StartOnlineStatusWatcher periodically probes the backend and flips the
// Mode between online and offline. Offline mode is purely informational:
// commands still run and fail with a transport error.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
