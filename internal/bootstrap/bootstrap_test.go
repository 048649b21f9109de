package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/agarbatti/backend-go/internal/client"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/local"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/sqlstore"
)

func TestOpenStoreBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name  string
		store config.StoreConfig
		db    config.DatabaseConfig
		check func(t *testing.T, got any)
	}{
		{
			name:  "local file",
			store: config.StoreConfig{Backend: config.BackendLocal, LocalDriver: config.LocalDriverFile, LocalPath: filepath.Join(dir, "data.json")},
			check: func(t *testing.T, got any) {
				if _, ok := got.(*local.Store); !ok {
					t.Fatalf("got %T", got)
				}
			},
		},
		{
			name:  "local memory",
			store: config.StoreConfig{Backend: config.BackendLocal, LocalDriver: config.LocalDriverMemory},
			check: func(t *testing.T, got any) {
				if _, ok := got.(*local.Store); !ok {
					t.Fatalf("got %T", got)
				}
			},
		},
		{
			name:  "sqlite",
			store: config.StoreConfig{Backend: config.BackendSQL},
			db:    config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "data.db")},
			check: func(t *testing.T, got any) {
				if _, ok := got.(*sqlstore.Store); !ok {
					t.Fatalf("got %T", got)
				}
			},
		},
		{
			name:  "remote",
			store: config.StoreConfig{Backend: config.BackendRemote, RemoteURL: "http://127.0.0.1:1"},
			check: func(t *testing.T, got any) {
				if _, ok := got.(*client.Client); !ok {
					t.Fatalf("got %T", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Store: tt.store, Database: tt.db}
			store, err := OpenStore(ctx, cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer store.Close(ctx)
			tt.check(t, store)
		})
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []*config.Config{
		{Store: config.StoreConfig{Backend: "cassandra"}},
		{Store: config.StoreConfig{Backend: config.BackendLocal, LocalDriver: "tape"}},
		{Store: config.StoreConfig{Backend: config.BackendRemote}},
	} {
		if _, err := OpenStore(ctx, cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg.Store)
		}
	}
}

func TestOpenObjectsDisabled(t *testing.T) {
	objects, err := OpenObjects(context.Background(), &config.Config{})
	if err != nil || objects != nil {
		t.Fatalf("objects = %v, err = %v", objects, err)
	}
}
