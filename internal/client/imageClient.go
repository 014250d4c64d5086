package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"fashion-cart/internal/config"
	"fashion-cart/internal/model"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	ProductImageFolder = "ecommerce-products"
	BannerImageFolder  = "ecommerce-feature-banners"
)

type ImageStore interface {
	// Upload stores the image under folder and returns its public https URL.
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

type cloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewImageStore(cfg *config.Cloudinary) (ImageStore, error) {
	if !cfg.Enabled() {
		return disabledImageStore{}, nil
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &cloudinaryStore{cld: cld}, nil
}

func (s *cloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return res.SecureURL, nil
}

func (s *cloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Error.Message)
	}

	return nil
}

// PublicIDFromURL derives the hosted asset id from its delivery URL: the last
// two path segments with the extension stripped, e.g.
// ".../upload/v17/ecommerce-feature-banners/abc.jpg" -> "ecommerce-feature-banners/abc".
func PublicIDFromURL(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		p = u.Path
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) > 2 {
		segments = segments[len(segments)-2:]
	}

	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

type disabledImageStore struct{}

func (disabledImageStore) Upload(context.Context, io.Reader, string) (string, error) {
	return "", model.NewError(model.ErrNotConfigured, "Image hosting is not configured")
}

func (disabledImageStore) Destroy(context.Context, string) error {
	return model.NewError(model.ErrNotConfigured, "Image hosting is not configured")
}
