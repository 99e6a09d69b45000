package watcher

import "context"

// Watcher monitors a drop folder and dispatches new media files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one detected media file.
type Handler func(ctx context.Context, filePath string) error
