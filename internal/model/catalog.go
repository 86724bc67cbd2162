package model

import "time"

type VideoInfo struct {
	Name       string    `json:"name"`
	CID        string    `json:"cid"`
	IpfsURI    string    `json:"ipfs"`
	GatewayURL string    `json:"gateway"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"upload_time"`
}

type GetVideosRequest struct{}

type GetVideosResponse struct {
	Videos []VideoInfo `json:"videos"`
}

type GetVideoRequest struct {
	Name string `form:"name" json:"name"`
}

type GetVideoResponse struct {
	Video VideoInfo `json:"video"`
}
