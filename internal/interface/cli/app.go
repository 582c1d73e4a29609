package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/config"
	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/format"
)

var (
	// ErrInvalidShip is returned when a ship name is blank.
	ErrInvalidShip = errors.New("ship name cannot be empty")
	// ErrInvalidLocation is returned when a location is blank.
	ErrInvalidLocation = errors.New("location cannot be empty")
	// ErrNoOpenSession is returned when a command needs a session in
	// progress and none exists.
	ErrNoOpenSession = errors.New("no session in progress (start one with 'scjournal start')")
)

// appContext is what every command handler works with: the loaded config,
// the open journal store and where to write.
type appContext struct {
	cfg    *config.Config
	db     *db.DB
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// clock is swapped by tests.
var clock = time.Now

func openApp(cmd *cobra.Command) (*appContext, error) {
	var cfg *config.Config
	var err error
	if configDir != "" {
		cfg, err = config.LoadFrom(configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := cfg.DBPath
	if dbPath != "" {
		path = dbPath
	}

	database, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &appContext{
		cfg:    cfg,
		db:     database,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		now:    clock,
	}, nil
}

func (a *appContext) close() {
	_ = a.db.Close()
}

// withApp adapts a handler to cobra's RunE, opening and closing the app
// context around it.
func withApp(run func(app *appContext, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.close()
		return run(app, args)
	}
}

// parseAt resolves a --at value, or returns now when it is empty.
func (a *appContext) parseAt(value string) (time.Time, error) {
	if value == "" {
		return a.now(), nil
	}
	t, err := format.ParseWhen(value, a.now())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t, nil
}

func (a *appContext) formatTime(t time.Time) string {
	return format.DateTime(t, a.cfg.TimeLayout)
}

// targetSession returns the session named by idOrPrefix, or the latest
// session in progress when it is empty.
func (a *appContext) targetSession(idOrPrefix string) (*db.StoredSession, error) {
	if idOrPrefix != "" {
		s, err := a.db.GetSession(idOrPrefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := a.db.LatestOpenSession()
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNoOpenSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}
	return s, nil
}
