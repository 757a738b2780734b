package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pricewatch/internal/catalog"
)

func seedCatalog(t *testing.T, env *cliTestEnv, table, id, partNumber string) {
	t.Helper()
	if err := os.MkdirAll(env.cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatalf("create data dir: %v", err)
	}
	store, err := catalog.OpenPath(filepath.Join(env.cfg.Paths.DataDir, "catalog.db"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer store.Close()
	if err := store.InsertSpec(context.Background(), table, id, partNumber); err != nil {
		t.Fatalf("seed spec: %v", err)
	}
}

func writeSnapshotFile(t *testing.T, env *cliTestEnv, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(env.cfg.Paths.InputDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
}

func TestReconcileCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCatalog(t, env, "CPUSpecifications", "cpu-x100", "X100-BOX")

	writeSnapshotFile(t, env, "acme.json", `[
		{"store_name": "Acme", "type": "CPU", "part #": "X100-BOX", "price": "$500", "url": "https://acme.test/x100", "image_url": "N/A"},
		{"store_name": "Acme", "type": "CPU", "part #": "X100-BOX", "price": "$450", "url": "https://acme.test/x100-deal", "image_url": "N/A"},
		{"store_name": "Acme", "type": "CPU", "part #": "MYSTERY-1", "price": "$99", "url": "https://acme.test/mystery", "image_url": "N/A"}
	]`)

	out, _, err := runCLI(t, []string{"reconcile"}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	requireContains(t, out, "Acme")

	out, _, err = runCLI(t, []string{"unmatched"}, env.configPath)
	if err != nil {
		t.Fatalf("unmatched: %v", err)
	}
	requireContains(t, out, "MYSTERY-1")

	out, _, err = runCLI(t, []string{"stores"}, env.configPath)
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	requireContains(t, out, "Acme")
}

func TestReconcileCommandEmptyInput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"reconcile"}, env.configPath)
	if err != nil {
		t.Fatalf("reconcile on empty tree: %v", err)
	}
	requireContains(t, out, "No snapshots found")
}

func TestStoresCommandEmptyDatabase(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"stores"}, env.configPath)
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	requireContains(t, out, "No stores recorded yet")
}
