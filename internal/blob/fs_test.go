package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestFSStorePutGetHead(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	info, err := store.Put(ctx, "tasks/export.csv", strings.NewReader("a,b\n1,2\n"), PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"module": "tasks"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 8 || info.ContentType != "text/csv" {
		t.Fatalf("unexpected info: %+v", info)
	}

	got, body, err := store.Get(ctx, "tasks/export.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = body.Close() }()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Fatalf("content mismatch: %q", data)
	}
	if got.Metadata["module"] != "tasks" {
		t.Fatalf("metadata lost: %+v", got)
	}

	head, err := store.Head(ctx, "tasks/export.csv")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.Size != info.Size || head.Key != "tasks/export.csv" {
		t.Fatalf("head mismatch: %+v", head)
	}
}

func TestFSStoreKeysAreWriteOnce(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Put(ctx, "k", strings.NewReader("one"), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("two"), PutOptions{}); err == nil {
		t.Fatal("second put to the same key should fail")
	}
}

func TestFSStoreRejectsTraversalKeys(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"../escape", "/absolute", "a/../../b", ""} {
		if _, err := store.Put(context.Background(), key, strings.NewReader("x"), PutOptions{}); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestFSStoreGetMissingKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, _, err := store.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Head(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreListByPrefix(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"tasks/a.csv", "tasks/b.csv", "sales/c.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "tasks/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "tasks/a.csv" || infos[1].Key != "tasks/b.csv" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestMemoryStoreBehavesLikeFS(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Put(ctx, "k", strings.NewReader("one"), PutOptions{ContentType: "text/plain"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("two"), PutOptions{}); err == nil {
		t.Fatal("second put should fail")
	}
	info, body, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = body.Close() }()
	data, _ := io.ReadAll(body)
	if string(data) != "one" || info.ContentType != "text/plain" {
		t.Fatalf("unexpected blob: %q %+v", data, info)
	}
	if _, err := store.Head(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
