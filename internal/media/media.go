// Package media signs direct-to-Cloudinary uploads and deletes assets
// when their owning records go away. Files never pass through the API
// server; clients upload straight to Cloudinary with a signature minted
// here.
package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Deleter is the slice of the media service the catalog services need.
type Deleter interface {
	DeleteAsset(ctx context.Context, publicID string) error
}

type SignedUpload struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Folder    string `json:"folder"`
}

type Service struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
	logger    *log.Logger
	now       func() time.Time
}

func NewService(cloudName, apiKey, apiSecret string, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Service{
		cld:       cld,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// SignUpload mints a short-lived signature for a direct upload into the
// store's folder. kind is "products" or "videos".
func (s *Service) SignUpload(storeID, kind string) (*SignedUpload, error) {
	if kind != "products" && kind != "videos" {
		return nil, fmt.Errorf("unknown upload kind %q", kind)
	}
	folder := "stores/" + storeID + "/" + kind
	ts := s.now().Unix()

	params := url.Values{}
	params.Set("folder", folder)
	params.Set("overwrite", "true")
	params.Set("timestamp", strconv.FormatInt(ts, 10))

	sig, err := api.SignParameters(params, s.apiSecret)
	if err != nil {
		return nil, fmt.Errorf("sign upload: %w", err)
	}
	return &SignedUpload{
		Signature: sig,
		Timestamp: ts,
		APIKey:    s.apiKey,
		CloudName: s.cloudName,
		Folder:    folder,
	}, nil
}

func (s *Service) DeleteAsset(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		s.logger.Printf("media: destroy public_id=%s error=%v", publicID, err)
		return err
	}
	if res.Result != "ok" && res.Result != "not found" {
		s.logger.Printf("media: destroy public_id=%s result=%s", publicID, res.Result)
		return fmt.Errorf("cloudinary destroy: %s", res.Result)
	}
	return nil
}
