package root

import (
	"context"
	"errors"
	"time"

	"github.com/pnkjpro/oathly/internal/config"
	"github.com/pnkjpro/oathly/internal/engine"
	"github.com/pnkjpro/oathly/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	svc, err := engine.NewService(ctx, db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := svc.Seed(ctx, time.Now()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// resolveTargetID picks the explicit id argument when given, otherwise the
// active target.
func resolveTargetID(svc *engine.Service, args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	t := svc.ActiveTarget()
	if t == nil {
		return "", errors.New("no active target; pass an id or create one with 'oathly add'")
	}
	return t.ID, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
