// Package refresh provides a Lambda handler that reloads a sheet on a schedule.
package refresh

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/sheetstore/store"
	"github.com/jacentio/sheetstore/transform"
)

// Loader is the part of *store.Store the handler drives.
type Loader interface {
	Load(ctx context.Context, url string) error
	Status() store.Status
}

// Handler processes scheduled EventBridge events by reloading the sheet.
type Handler struct {
	loader Loader
	url    string
	logger *slog.Logger
}

// NewHandler creates a new refresh handler. An empty url defers to the store's SourceURL.
func NewHandler(l Loader, url string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		loader: l,
		url:    url,
		logger: logger,
	}
}

// HandleScheduledRefresh reloads the sheet for one scheduled event.
// This function is designed to be used as an AWS Lambda handler.
//
// Transport failures are returned so Lambda retries the invocation. Invalid
// payloads and superseded loads are logged and not retried.
func (h *Handler) HandleScheduledRefresh(ctx context.Context, event events.CloudWatchEvent) error {
	h.logger.Info("processing scheduled refresh",
		"eventID", event.ID,
		"source", event.Source,
		"time", event.Time,
	)

	err := h.loader.Load(ctx, h.url)
	switch {
	case err == nil:
		h.logger.Info("scheduled refresh completed",
			"eventID", event.ID,
			"loadedAt", h.loader.Status().LoadedAt,
		)
		return nil

	case errors.Is(err, transform.ErrInvalidPayload):
		h.logger.Error("sheet payload rejected",
			"eventID", event.ID,
			"error", err,
		)
		return nil

	case errors.Is(err, store.ErrSuperseded):
		h.logger.Info("scheduled refresh superseded",
			"eventID", event.ID,
		)
		return nil
	}

	h.logger.Error("failed to refresh sheet",
		"eventID", event.ID,
		"error", err,
	)
	return err // Will retry
}
