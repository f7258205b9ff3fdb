package ports

import "context"

// ExportSink receives exported assignment text.
type ExportSink interface {
	// Deliver hands over the complete export as one string.
	Deliver(ctx context.Context, text string) error
}
