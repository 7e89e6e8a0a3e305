package mysql

import (
	"context"
	"os"
	"testing"

	"skillfactory/todo/pkg/storage"
	"skillfactory/todo/pkg/storage/storagetest"
)

// Интеграционный тест, требует запущенный MySQL:
// TEST_MYSQL_DSN=root:secret@tcp(127.0.0.1:3306)/todo_test?parseTime=true
func TestStorage(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN is not set")
	}

	storagetest.Run(t, func(t *testing.T) storage.Interface {
		ctx := context.Background()
		s, err := New(ctx, dsn)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		t.Cleanup(s.Close)
		if _, err := s.db.ExecContext(ctx, `TRUNCATE TABLE tasks`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return s
	})
}
