package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"fashion-cart/internal/client"

	"github.com/rs/zerolog"
)

const maxUploadImages = 5

// uploadImages pushes files to the image host in order. If one fails the ones
// already uploaded are destroyed again.
func uploadImages(ctx context.Context, store client.ImageStore, log zerolog.Logger, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := uploadOne(ctx, store, fh, folder)
		if err != nil {
			destroyImages(ctx, store, log, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func uploadOne(ctx context.Context, store client.ImageStore, fh *multipart.FileHeader, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	url, err := store.Upload(ctx, f, folder)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	return url, nil
}

// destroyImages is best effort; failures only leave orphans at the host.
func destroyImages(ctx context.Context, store client.ImageStore, log zerolog.Logger, urls []string) {
	for _, u := range urls {
		publicID := client.PublicIDFromURL(u)
		if err := store.Destroy(ctx, publicID); err != nil {
			log.Warn().Err(err).Str("public_id", publicID).Msg("failed to remove hosted image")
		}
	}
}
