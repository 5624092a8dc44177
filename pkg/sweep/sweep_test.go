package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"modboard/pkg/assets"
	"modboard/pkg/config"
	"modboard/pkg/fetch"
)

func TestRunOnceDisposesNothingWhenFresh(t *testing.T) {
	f := fetch.New(fetch.StaticProvider(""), time.Second)
	reg := assets.NewRegistry(f, nil, "")
	_ = reg.CreateScope()
	require.Equal(t, 0, RunOnce(reg, time.Hour))
}

func TestStartDisabledReturnsNoopCancel(t *testing.T) {
	f := fetch.New(fetch.StaticProvider(""), time.Second)
	reg := assets.NewRegistry(f, nil, "")
	cfg := &config.Config{}
	cancel, err := Start(context.Background(), cfg, reg)
	require.NoError(t, err)
	require.NotNil(t, cancel)
	cancel()
}

func TestStartRejectsInvalidCron(t *testing.T) {
	f := fetch.New(fetch.StaticProvider(""), time.Second)
	reg := assets.NewRegistry(f, nil, "")
	cfg := &config.Config{}
	cfg.Sweep.Enabled = true
	cfg.Sweep.Cron = "not a cron"
	_, err := Start(context.Background(), cfg, reg)
	require.Error(t, err)
}
