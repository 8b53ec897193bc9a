// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	configuration, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if configuration != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", configuration)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server: https://api.eventhub.example/api
events_page_size: 20
stale_after: 1m
`)
	configuration, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if configuration.Server != "https://api.eventhub.example/api" {
		t.Errorf("Server = %q", configuration.Server)
	}
	if configuration.EventsPageSize != 20 {
		t.Errorf("EventsPageSize = %d, want 20", configuration.EventsPageSize)
	}
	// Unset fields keep their defaults.
	if configuration.TicketsPageSize != 10 {
		t.Errorf("TicketsPageSize = %d, want default 10", configuration.TicketsPageSize)
	}
	if configuration.StaleAfter != time.Minute {
		t.Errorf("StaleAfter = %s, want 1m", configuration.StaleAfter)
	}
}

func TestLoadEnvironmentFallback(t *testing.T) {
	path := writeConfig(t, "server: http://envhost:9000/api\n")
	t.Setenv("EVENTHUB_CONFIG", path)

	configuration, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if configuration.Server != "http://envhost:9000/api" {
		t.Errorf("Server = %q, want the env-configured host", configuration.Server)
	}
}

func TestLoadUnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "sever: http://typo:8080/api\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []string{
		"server: \"\"\n",
		"events_page_size: 0\n",
		"events_page_size: -3\n",
		"tickets_page_size: 0\n",
		"stale_after: -5s\n",
	}
	for _, content := range cases {
		path := writeConfig(t, content)
		if _, err := Load(path); err == nil {
			t.Errorf("Load accepted invalid config %q", content)
		}
	}
}
