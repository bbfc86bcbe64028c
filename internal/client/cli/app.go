package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/vaultview/internal/client/api"
	"github.com/dmitrijs2005/vaultview/internal/client/config"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/collections"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/records"
	"github.com/dmitrijs2005/vaultview/internal/client/services"
	"github.com/dmitrijs2005/vaultview/internal/client/storage"
	"github.com/dmitrijs2005/vaultview/internal/filex"
	"github.com/dmitrijs2005/vaultview/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// App holds the wiring of the interactive client. Services bound to the
// master key (records, reports, view) are built at login and torn down at
// logout.
type App struct {
	config      *config.Config
	db          *sql.DB
	apiClient   api.Client
	authService services.AuthService
	syncService *services.SyncService
	events      *services.EventService
	log         logging.Logger

	masterKey []byte
	userName  string
	Mode      Mode
	reader    *bufio.Reader

	recordService *services.RecordService
	reportService *services.ReportService
	view          *services.ViewSession
	attachments   *services.AttachmentService
	deliverer     *filex.DirDeliverer
}

func NewApp(c *config.Config, lg logging.Logger) (*App, error) {
	ctx := context.Background()

	if lg == nil {
		lg = logging.NewNoopLogger()
	}

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerEndpointAddr)

	return &App{
		config:      c,
		db:          db,
		apiClient:   apiClient,
		authService: services.NewAuthService(apiClient, db),
		syncService: services.NewSyncService(apiClient, db, lg),
		events:      services.NewEventService(apiClient, lg),
		log:         lg,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	defer a.events.Flush()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.masterKey != nil
}

// openSession builds the services that need the master key. Called after a
// successful login.
func (a *App) openSession() error {
	recRepo := records.NewSQLiteRepository(a.db)
	colRepo := collections.NewSQLiteRepository(a.db)

	a.recordService = services.NewRecordService(recRepo, a.masterKey, a.log)
	a.reportService = services.NewReportService(a.recordService, colRepo)

	dir, err := filex.EnsureSubDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	a.deliverer = &filex.DirDeliverer{Dir: dir}

	keys := services.NewStaticKeyProvider()
	a.attachments = services.NewAttachmentService(a.apiClient, nil, keys, a.deliverer, a.log)

	confirmer := &passwordConfirmer{auth: a.authService, out: os.Stdout}
	a.view = services.NewViewSession(confirmer, a.events, a.attachments, a.apiClient.Premium(), a.log)
	return nil
}

// closeSession drops everything derived from the master key.
func (a *App) closeSession() {
	if a.view != nil {
		a.view.Close()
	}
	a.recordService = nil
	a.reportService = nil
	a.attachments = nil
	a.view = nil
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
