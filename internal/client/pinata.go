package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/videodanza/backend/config"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/pkg/xcontext"
	"github.com/videodanza/backend/pkg/xredis"
)

// CatalogCaller is the external publishing/pinning collaborator: it owns
// the video catalog and accepts metadata documents for pinning.
type CatalogCaller interface {
	ListVideos(ctx context.Context) ([]model.VideoInfo, error)
	GetVideo(ctx context.Context, name string) (*model.VideoInfo, error)
	PinJSON(ctx context.Context, name string, doc any) (string, error)
}

const catalogCacheKey = "pinata:catalog"

type pinataCaller struct {
	cfg         config.PinataConfigs
	httpClient  *http.Client
	redisClient xredis.Client
}

// NewPinataCaller builds a caller against the pinning proxy. The redis
// client is optional; without it every lookup hits the proxy.
func NewPinataCaller(cfg config.PinataConfigs, redisClient xredis.Client) *pinataCaller {
	return &pinataCaller{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		redisClient: redisClient,
	}
}

type lookupEntry struct {
	CID        string    `json:"cid"`
	IpfsURI    string    `json:"ipfs"`
	GatewayURL string    `json:"gateway"`
	FileSize   int64     `json:"fileSize"`
	UploadTime time.Time `json:"uploadTime"`
}

type listVideosResponse struct {
	Success bool                   `json:"success"`
	Videos  map[string]lookupEntry `json:"videos"`
}

// ListVideos returns the catalog in its canonical order, names ascending.
func (c *pinataCaller) ListVideos(ctx context.Context) ([]model.VideoInfo, error) {
	if c.redisClient != nil {
		var cached []model.VideoInfo
		if err := c.redisClient.GetObj(ctx, catalogCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var resp listVideosResponse
	if err := c.get(ctx, "/api/ipfs/videos", &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.Videos))
	for name := range resp.Videos {
		names = append(names, name)
	}
	sort.Strings(names)

	videos := make([]model.VideoInfo, 0, len(names))
	for _, name := range names {
		entry := resp.Videos[name]
		videos = append(videos, model.VideoInfo{
			Name:       name,
			CID:        entry.CID,
			IpfsURI:    entry.IpfsURI,
			GatewayURL: entry.GatewayURL,
			FileSize:   entry.FileSize,
			UploadedAt: entry.UploadTime,
		})
	}

	if c.redisClient != nil {
		if err := c.redisClient.SetObj(ctx, catalogCacheKey, videos, c.cfg.CatalogTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache the catalog: %v", err)
		}
	}

	return videos, nil
}

type getVideoResponse struct {
	Success bool        `json:"success"`
	Video   lookupEntry `json:"video"`
}

func (c *pinataCaller) GetVideo(ctx context.Context, name string) (*model.VideoInfo, error) {
	var resp getVideoResponse
	if err := c.get(ctx, "/api/ipfs/video/"+name, &resp); err != nil {
		return nil, err
	}

	return &model.VideoInfo{
		Name:       name,
		CID:        resp.Video.CID,
		IpfsURI:    resp.Video.IpfsURI,
		GatewayURL: resp.Video.GatewayURL,
		FileSize:   resp.Video.FileSize,
		UploadedAt: resp.Video.UploadTime,
	}, nil
}

type pinJSONRequest struct {
	PinataContent  any            `json:"pinataContent"`
	PinataMetadata map[string]any `json:"pinataMetadata"`
	PinataOptions  map[string]any `json:"pinataOptions"`
}

type pinJSONResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinJSON publishes a JSON document and returns its CID.
func (c *pinataCaller) PinJSON(ctx context.Context, name string, doc any) (string, error) {
	body, err := json.Marshal(pinJSONRequest{
		PinataContent: doc,
		PinataMetadata: map[string]any{
			"name":      name,
			"keyvalues": map[string]any{"videodanza": "true"},
		},
		PinataOptions: map[string]any{"cidVersion": 1},
	})
	if err != nil {
		return "", err
	}

	url := c.cfg.ApiURL + "/pinning/pinJSONToIPFS"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinata responded with status %d", httpResp.StatusCode)
	}

	var resp pinJSONResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", err
	}

	return resp.IpfsHash, nil
}

func (c *pinataCaller) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ApiURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinning proxy responded with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
