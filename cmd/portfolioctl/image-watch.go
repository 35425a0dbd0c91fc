package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/ingest"
)

// settleDelay is how long a dropped file must stay unchanged before it is
// ingested, so partially copied files are not picked up.
const settleDelay = 2 * time.Second

// imageWatchCmd represents the image watch command
var imageWatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a drop folder and ingest new images",
	Long: `Watch a directory and ingest every image file written into it.

Files with an allowed extension are ingested once they stop changing.
Ingested files are removed from the drop folder unless --keep is set;
files that fail stay in place.

Example:
  portfolioctl image watch /srv/dropbox --category weddings`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := ingestOptions(cmd)
		keep, _ := cmd.Flags().GetBool("keep")

		a, err := newApp(cmd.Context())
		if err != nil {
			fail("Failed to start", err)
		}
		defer a.close()

		if err := watchDropFolder(cmd.Context(), a, args[0], opts, keep); err != nil {
			fail("Failed to watch folder", err)
		}
	},
}

func init() {
	imageCmd.AddCommand(imageWatchCmd)
	addIngestFlags(imageWatchCmd)
	imageWatchCmd.Flags().Bool("keep", false, "leave ingested files in the drop folder")
}

func watchDropFolder(ctx context.Context, a *app, dir string, opts ingest.Options, keep bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	fmt.Printf("Watching %s for new images\n", dir)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// pending maps a path to the time it last changed
	pending := map[string]time.Time{}
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !a.cfg.IsAllowedExtension(filepath.Ext(event.Name)) || strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			pending[event.Name] = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", zap.Error(err))
		case now := <-ticker.C:
			for path, changed := range pending {
				if now.Sub(changed) < settleDelay {
					continue
				}
				delete(pending, path)
				ingestDropped(ctx, a, path, opts, keep)
			}
		}
	}
}

func ingestDropped(ctx context.Context, a *app, path string, opts ingest.Options, keep bool) {
	f, err := os.Open(path)
	if err != nil {
		a.log.Warn("dropped file vanished", zap.String("file", path), zap.Error(err))
		return
	}
	img, err := a.ingest.Ingest(ctx, ingest.Upload{Filename: filepath.Base(path), Body: f}, opts)
	_ = f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s: %v\n", time.Now().Format(time.RFC3339), path, err)
		return
	}
	fmt.Printf("[%s] %s: image %d stored as %s\n", time.Now().Format(time.RFC3339), path, img.ID, img.Filename)

	if !keep {
		if err := os.Remove(path); err != nil {
			a.log.Warn("failed to remove ingested file", zap.String("file", path), zap.Error(err))
		}
	}
}
