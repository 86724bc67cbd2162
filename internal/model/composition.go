package model

type GetCompositionRequest struct {
	// Phrase is the user seed phrase; when set it is hashed into the seed.
	Phrase string `form:"phrase" json:"phrase"`

	// Seed is a 0x-prefixed 256-bit hex value, used when the caller has
	// already derived it.
	Seed string `form:"seed" json:"seed"`
}

type CompositionElement struct {
	VideoKey  string  `json:"video_key"`
	VideoName string  `json:"video_name"`
	IpfsURI   string  `json:"ipfs_uri"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Scale     float64 `json:"scale"`
	Opacity   float64 `json:"opacity"`
	Rotation  float64 `json:"rotation"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	BlendMode string  `json:"blend_mode"`
	EffectID  int     `json:"effect_id"`
	ZIndex    int     `json:"z_index"`
}

type GetCompositionResponse struct {
	// Ready is false while the video catalog is empty; the client renders
	// a waiting state instead of an error.
	Ready bool `json:"ready"`

	Seed                string               `json:"seed,omitempty"`
	Elements            []CompositionElement `json:"elements,omitempty"`
	TotalDuration       float64              `json:"total_duration,omitempty"`
	BackgroundIntensity float64              `json:"background_intensity,omitempty"`
	Theme               string               `json:"theme,omitempty"`
	ColorShift          float64              `json:"color_shift,omitempty"`
	AudioIntensity      float64              `json:"audio_intensity,omitempty"`
	Hash                string               `json:"hash,omitempty"`
	LayerCount          int                  `json:"layer_count,omitempty"`
}

type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataDocument is the token metadata JSON published to IPFS.
type MetadataDocument struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Image        string              `json:"image"`
	AnimationURL string              `json:"animation_url"`
	Attributes   []MetadataAttribute `json:"attributes"`
}

type UploadMetadataRequest struct {
	Phrase       string `json:"phrase"`
	TokenID      int64  `json:"token_id"`
	Image        string `json:"image"`
	AnimationURL string `json:"animation_url"`
}

type UploadMetadataResponse struct {
	MetadataURI string `json:"metadata_uri"`
	GatewayURL  string `json:"gateway_url"`
}
