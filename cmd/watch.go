package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/declogic/setdec/internal/parse"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-prove proof scripts whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}
		if err := watchDirs(args); err != nil {
			logger.Error("Watch failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func watchDirs(dirs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("adding directory to watcher: %w", err)
		}
	}
	logger.Info("Watching for proof script changes", zap.Strings("dirs", dirs))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleScriptEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func handleScriptEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !parse.IsScriptFile(event.Name) {
		return
	}
	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)
	proveFile(event.Name)
}
