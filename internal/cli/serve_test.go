package cli

import (
	"context"
	"testing"
)

func TestNewStoreInvalid(t *testing.T) {
	_, err := newStore(context.Background(), &serveOpts{storeKind: "etcd"})
	if err == nil {
		t.Error("unknown store backend should error")
	}
}

func TestNewStoreMemory(t *testing.T) {
	st, err := newStore(context.Background(), &serveOpts{storeKind: "memory"})
	if err != nil {
		t.Fatalf("newStore(memory) error: %v", err)
	}
	defer st.Close()
	if st == nil {
		t.Fatal("newStore(memory) returned nil")
	}
}

func TestNewStoreFS(t *testing.T) {
	st, err := newStore(context.Background(), &serveOpts{storeKind: "fs", storePath: t.TempDir()})
	if err != nil {
		t.Fatalf("newStore(fs) error: %v", err)
	}
	defer st.Close()
}

func TestNewServeCache(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []string{"none", "memory"} {
		ch, err := newServeCache(ctx, kind)
		if err != nil {
			t.Errorf("newServeCache(%q) error: %v", kind, err)
			continue
		}
		ch.Close()
	}

	if _, err := newServeCache(ctx, "memcached"); err == nil {
		t.Error("unknown cache backend should error")
	}
}

func TestDefaultStr(t *testing.T) {
	if got := defaultStr("", "fallback"); got != "fallback" {
		t.Errorf("defaultStr empty = %q, want fallback", got)
	}
	if got := defaultStr("set", "fallback"); got != "set" {
		t.Errorf("defaultStr set = %q, want set", got)
	}
}
