// Package imagestore persists uploaded images and hands back durable URLs.
// The rest of the system only ever stores the returned URL string on the car
// or user record, never raw bytes.
package imagestore

import "context"

type Store interface {
	// Upload stores the image bytes under the given folder and returns the
	// public URL of the stored object.
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}
