package organizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestService_Run_IngestsLocalCSVs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sr1_cust_01.csv", "id,amount\n1,10\n")
	writeFile(t, dir, "notes.txt", "not a csv")

	store := newStubStore()
	pub := &stubPublisher{}
	svc := NewService(store, pub, "dct-sales/", dir)

	if err := svc.Run(context.Background(), testRunID); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The uploaded CSV was picked up by the same run and filed.
	if _, ok := store.objects["dct-sales/sr1/sr1_cust_01.csv"]; !ok {
		t.Errorf("expected uploaded csv to be filed, got %v", store.objects)
	}
	if _, ok := store.objects["notes.txt"]; ok {
		t.Error("non-csv file must not be uploaded")
	}
	if len(pub.subjects) != 1 {
		t.Errorf("expected one notification, got %v", pub.subjects)
	}
}

func TestIngestLocalCSVs_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sr1_cust_01.csv", "id,amount\n1,10\n")

	store := newStubStore("sr1_cust_01.csv")
	store.objects["sr1_cust_01.csv"] = "already-there"
	svc := NewService(store, &stubPublisher{}, "dct-sales/", dir)

	if err := svc.ingestLocalCSVs(context.Background()); err != nil {
		t.Fatalf("ingestLocalCSVs() error = %v", err)
	}

	if store.objects["sr1_cust_01.csv"] != "already-there" {
		t.Error("existing object must not be overwritten")
	}
}

func TestService_Run_MissingSourceDirAbortsRun(t *testing.T) {
	svc := NewService(newStubStore(), &stubPublisher{}, "dct-sales/", "/nonexistent-dir")

	if err := svc.Run(context.Background(), testRunID); err == nil {
		t.Fatal("expected error for unreadable source dir")
	}
}
