package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAccount(t *testing.T) {
	table := map[string]string{"prod": "123456789012"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "alias from table", input: "prod", want: "123456789012"},
		{name: "literal id without table entry", input: "210987654321", want: "210987654321"},
		{name: "unknown alias", input: "unknown-alias", wantErr: true},
		{name: "too short", input: "12345", wantErr: true},
		{name: "letters", input: "abcdefghijkl", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "thirteen digits", input: "1234567890123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAccount(tt.input, table)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAccountID) {
					t.Fatalf("ResolveAccount(%q) error = %v, want ErrInvalidAccountID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAccount(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveAccount(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveAccountAliasMappingToInvalidID(t *testing.T) {
	// A table entry pointing at garbage must still be rejected.
	table := map[string]string{"broken": "not-an-id"}
	if _, err := ResolveAccount("broken", table); !errors.Is(err, ErrInvalidAccountID) {
		t.Errorf("expected ErrInvalidAccountID, got %v", err)
	}
}

func TestLoadAccounts(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file tolerated", func(t *testing.T) {
		table, err := LoadAccounts(filepath.Join(dir, "nope"))
		if err != nil {
			t.Fatalf("LoadAccounts failed: %v", err)
		}
		if len(table) != 0 {
			t.Errorf("expected empty table, got %v", table)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "accounts")
		if err := os.WriteFile(path, []byte(`{"prod": "123456789012", "dev": "210987654321"}`), 0600); err != nil {
			t.Fatal(err)
		}
		table, err := LoadAccounts(path)
		if err != nil {
			t.Fatalf("LoadAccounts failed: %v", err)
		}
		if table["prod"] != "123456789012" || table["dev"] != "210987654321" {
			t.Errorf("unexpected table: %v", table)
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt")
		if err := os.WriteFile(path, []byte("{ invalid json..."), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadAccounts(path); err == nil {
			t.Error("expected error for corrupt accounts file, got nil")
		}
	})
}
