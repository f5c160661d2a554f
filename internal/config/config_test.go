package config_test

import (
	"strings"
	"testing"

	"github.com/communiconnect/delivery/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Server.Port != "8092" {
		t.Fatalf("unexpected default port: %q", cfg.Server.Port)
	}
	if len(cfg.Kafka.Topics) != 6 {
		t.Fatalf("unexpected default topics: %v", cfg.Kafka.Topics)
	}
	if cfg.TTL.RetentionDays != 30 {
		t.Fatalf("unexpected retention: %d", cfg.TTL.RetentionDays)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("COMCON_SERVER_PORT", "9999")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9999" {
		t.Fatalf("env override ignored, port = %q", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("unprefixed env override ignored, host = %q", cfg.Database.Host)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected validation error for short jwt secret")
	}
}

func TestDSN(t *testing.T) {
	d := config.DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "delivery", User: "app", Password: "pw",
	}
	dsn := d.DSN()
	for _, part := range []string{"host=localhost", "port=5432", "dbname=delivery", "user=app", "password=pw"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("DSN missing %q: %s", part, dsn)
		}
	}
}
