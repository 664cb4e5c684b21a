package mcp

import (
	"context"
	"os"
	"time"

	"riskaction/internal/logging"
)

// WatchParent cancels the server context when the parent process goes away,
// so an orphaned stdio server does not linger.
//
// It must not read stdin: the SDK's StdioTransport owns it.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	watchParent(ctx, cancel, os.Getppid, 2*time.Second)
}

func watchParent(ctx context.Context, cancel context.CancelFunc, getppid func() int, every time.Duration) {
	ppid := getppid()
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "ppid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
