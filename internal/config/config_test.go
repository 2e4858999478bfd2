package config

import (
	"testing"

	"comanda-pos/internal/domain"
)

func TestParseCloseFrom(t *testing.T) {
	got, err := parseCloseFrom("served")
	if err != nil {
		t.Fatalf("served: %v", err)
	}
	if len(got) != 1 || got[0] != domain.StatusServed {
		t.Errorf("served policy = %v", got)
	}

	got, err = parseCloseFrom("in_kitchen")
	if err != nil {
		t.Fatalf("in_kitchen: %v", err)
	}
	if len(got) != 2 || got[0] != domain.StatusInKitchen || got[1] != domain.StatusServed {
		t.Errorf("in_kitchen policy = %v", got)
	}

	if _, err := parseCloseFrom("open"); err == nil {
		t.Error("open must be rejected as a close policy")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.HTTP.Addr == "" {
		t.Error("HTTP addr must have a default")
	}
	if cfg.DB.Port == 0 {
		t.Error("DB port must have a default")
	}
	if len(cfg.Caja.CloseFrom) == 0 {
		t.Error("close policy must default to served")
	}
}
