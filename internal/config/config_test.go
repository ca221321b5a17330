package config

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":8080", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected %v, got %v", e, g)
	}

	if e, g := 24*time.Hour, conf.HTTP.Session.TTL; e != g {
		t.Errorf("conf.HTTP.Session.TTL: expected %v, got %v", e, g)
	}

	if e, g := "data.sqlite", conf.Storage.Database.DSN; e != g {
		t.Errorf("conf.Storage.Database.DSN: expected %v, got %v", e, g)
	}

	if !conf.Storage.Database.Cache.Users.Enabled {
		t.Errorf("conf.Storage.Database.Cache.Users.Enabled: expected true")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SCHEDULER_HTTP_ADDRESS", ":9090")
	t.Setenv("SCHEDULER_HTTP_SESSION_KEYS", "first,second")
	t.Setenv("SCHEDULER_STORAGE_DATABASE_DSN", "/tmp/scheduler.sqlite")
	t.Setenv("SCHEDULER_HTTP_RATE_LIMIT_MAX_BURST", "2")

	conf, err := Parse()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":9090", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected %v, got %v", e, g)
	}

	if e, g := 2, len(conf.HTTP.Session.Keys); e != g {
		t.Fatalf("len(conf.HTTP.Session.Keys): expected %v, got %v", e, g)
	}

	if e, g := "second", conf.HTTP.Session.Keys[1]; e != g {
		t.Errorf("conf.HTTP.Session.Keys[1]: expected %v, got %v", e, g)
	}

	if e, g := "/tmp/scheduler.sqlite", conf.Storage.Database.DSN; e != g {
		t.Errorf("conf.Storage.Database.DSN: expected %v, got %v", e, g)
	}

	if e, g := 2, conf.HTTP.RateLimit.MaxBurst; e != g {
		t.Errorf("conf.HTTP.RateLimit.MaxBurst: expected %v, got %v", e, g)
	}
}
