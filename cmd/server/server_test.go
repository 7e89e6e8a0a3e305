package main

import (
	"context"
	"testing"

	"skillfactory/todo/pkg/config"
	"skillfactory/todo/pkg/storage/memdb"
)

func TestOpenStorage_Memory(t *testing.T) {
	db, err := openStorage(context.Background(), &config.Config{
		DatabaseURL: "memory://",
		Driver:      config.DriverMemory,
	})
	if err != nil {
		t.Fatalf("openStorage: %v", err)
	}
	defer db.Close()
	if _, ok := db.(*memdb.Storage); !ok {
		t.Fatalf("expected memdb storage, got %T", db)
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := openStorage(context.Background(), &config.Config{
		DatabaseURL: "sqlite://file.db",
		Driver:      "sqlite",
	})
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenStorage_BadMySQLURL(t *testing.T) {
	_, err := openStorage(context.Background(), &config.Config{
		DatabaseURL: "postgresql://localhost/db",
		Driver:      config.DriverMySQL,
	})
	if err == nil {
		t.Fatalf("expected error for non-mysql url with mysql driver")
	}
}
