package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/config"
	"github.com/dmitrijs2005/bloodlink/internal/client/repositories"
	"github.com/dmitrijs2005/bloodlink/internal/client/router"
	"github.com/dmitrijs2005/bloodlink/internal/client/services"
	"github.com/dmitrijs2005/bloodlink/internal/client/session"
	"github.com/dmitrijs2005/bloodlink/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	repos  *repositories.Repositories
	store  *session.Store
	router *router.Router

	authService      services.AuthService
	inventoryService services.InventoryService
	requestService   services.RequestService
	profileService   services.ProfileService
	transferService  services.TransferService
	donationService  services.DonationService

	gatherer prometheus.Gatherer
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local database, restores any persisted session and wires
// the services against the backend configured in c.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdin, os.Stdout, logging.New(c.LogLevel, os.Stderr))
}

func newApp(c *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := repositories.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewStore(repos.Session, log)
	if err := store.Open(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithRefreshPath(c.RefreshPath),
		client.WithLogger(log),
	)

	rt := router.New()
	rt.Sync(store.CurrentRole())

	return &App{
		config:           c,
		log:              log,
		repos:            repos,
		store:            store,
		router:           rt,
		authService:      services.NewAuthService(apiClient, store, log),
		inventoryService: services.NewInventoryService(apiClient, nil),
		requestService:   services.NewRequestService(apiClient),
		profileService:   services.NewProfileService(apiClient, store),
		transferService:  services.NewTransferService(apiClient),
		donationService:  services.NewDonationService(repos.Offers, nil, log),
		gatherer:         prometheus.DefaultGatherer,
		reader:           bufio.NewReader(in),
		out:              out,
	}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config.MetricsAddr != "" {
		if addr, err := a.serveMetrics(ctx, a.config.MetricsAddr); err != nil {
			a.log.Warn(ctx, "metrics endpoint disabled", "address", a.config.MetricsAddr, "error", err)
		} else {
			fmt.Fprintf(a.out, "Metrics available at http://%s/metrics\n", addr)
		}
	}

	fmt.Fprintln(a.out, "Welcome to bloodlink (type 'help' for commands)")
	if role, ok := a.authService.CurrentRole(); ok {
		fmt.Fprintf(a.out, "Signed in as %s\n", role)
	}
	runREPL(ctx, a)
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.repos != nil {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(context.Background(), "closing database", "error", err)
		}
	}
}

func (a *App) status() string {
	if role, ok := a.authService.CurrentRole(); ok {
		return fmt.Sprintf("(%s %s)", role, a.router.Current())
	}
	return fmt.Sprintf("(%s)", a.router.Current())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
