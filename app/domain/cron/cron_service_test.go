package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/mileusna/crontab"
	"github.com/stretchr/testify/assert"
)

type fakePurger struct {
	purged int
	err    error
	calls  int
}

func (f *fakePurger) PurgeExpired(ctx context.Context) (int, error) {
	f.calls++
	return f.purged, f.err
}

func TestPurgeExpired(t *testing.T) {
	purger := &fakePurger{purged: 3}
	cs := NewService(purger)

	assert.Equal(t, 3, cs.purgeExpired(context.Background()))
	assert.Equal(t, 1, purger.calls)

	purger.err = errors.New("store down")
	assert.Equal(t, 0, cs.purgeExpired(context.Background()))

	var nilService *CronService
	assert.Equal(t, 0, nilService.purgeExpired(context.Background()))
}

func TestStartRegistersJob(t *testing.T) {
	ctab := crontab.New()
	defer ctab.Shutdown()

	NewService(&fakePurger{}).Start(context.Background(), ctab)
	ctab.RunAll()
}
