package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"skill_quiz_backend/internal/config"
)

const baseConfig = `
jwt:
  secret: test-secret
database:
  driver: sqlite
storage:
  type: minio
report:
  cache_ttl_seconds: %d
`

func writeTTL(t *testing.T, dir string, ttl int) {
	t.Helper()
	body := []byte(fmt.Sprintf(baseConfig, ttl))
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeTTL(t, dir, 60)

	reloaded := make(chan *config.Config, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 注册
	time.Sleep(200 * time.Millisecond)
	writeTTL(t, dir, 5)

	select {
	case cfg := <-reloaded:
		if cfg.Report.CacheTTLSeconds != 5 {
			t.Fatalf("reloaded ttl = %d, want 5", cfg.Report.CacheTTLSeconds)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Watch did not stop after cancel")
	}
}
