package generative

import (
	"math"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/videodanza/backend/pkg/enum"
)

type Theme string

var (
	ThemeGeometric = enum.New(Theme("geometric"))
	ThemeOrganic   = enum.New(Theme("organic"))
	ThemeHybrid    = enum.New(Theme("hybrid"))
	ThemeGlitch    = enum.New(Theme("glitch"))
	ThemeCinematic = enum.New(Theme("cinematic"))
	ThemeAbstract  = enum.New(Theme("abstract"))
	ThemeKinetic   = enum.New(Theme("kinetic"))

	Themes = []Theme{
		ThemeGeometric,
		ThemeOrganic,
		ThemeHybrid,
		ThemeGlitch,
		ThemeCinematic,
		ThemeAbstract,
		ThemeKinetic,
	}
)

type BlendMode string

var (
	BlendNormal     = enum.New(BlendMode("normal"))
	BlendMultiply   = enum.New(BlendMode("multiply"))
	BlendScreen     = enum.New(BlendMode("screen"))
	BlendOverlay    = enum.New(BlendMode("overlay"))
	BlendColorDodge = enum.New(BlendMode("color-dodge"))
	BlendDarken     = enum.New(BlendMode("darken"))
	BlendLighten    = enum.New(BlendMode("lighten"))
	BlendSoftLight  = enum.New(BlendMode("soft-light"))
	BlendHardLight  = enum.New(BlendMode("hard-light"))
	BlendDifference = enum.New(BlendMode("difference"))

	BlendModes = []BlendMode{
		BlendNormal,
		BlendMultiply,
		BlendScreen,
		BlendOverlay,
		BlendColorDodge,
		BlendDarken,
		BlendLighten,
		BlendSoftLight,
		BlendHardLight,
		BlendDifference,
	}
)

// CatalogEntry is one available source video with its storage locations.
type CatalogEntry struct {
	Name       string
	CID        string
	IpfsURI    string
	GatewayURL string
	FileSize   int64
	UploadedAt time.Time
}

// Catalog is the ordered collection of available source videos. The order
// matters: the builder draws by position, so reordering or changing
// membership changes every composition. Callers must pass the catalog in
// its canonical (publisher-defined) order.
type Catalog []CatalogEntry

// Element is one video layer of a composition. Positions are percentages
// and may overscan outside [0, 100].
type Element struct {
	VideoKey   string    `json:"videoKey"`
	VideoName  string    `json:"videoName"`
	IpfsURI    string    `json:"ipfsUri"`
	StartTime  float64   `json:"startTime"`
	Duration   float64   `json:"duration"`
	Scale      float64   `json:"scale"`
	Opacity    float64   `json:"opacity"`
	Rotation   float64   `json:"rotation"`
	PositionX  float64   `json:"positionX"`
	PositionY  float64   `json:"positionY"`
	BlendMode  BlendMode `json:"blendMode"`
	EffectID   int       `json:"effectId"`
	ZIndex     int       `json:"zIndex"`
}

// Composition is the full parametric description of a layered video piece.
// It carries no pixels, only the parameters a renderer needs.
type Composition struct {
	Seed                string    `json:"seed"`
	Elements            []Element `json:"elements"`
	TotalDuration       float64   `json:"totalDuration"`
	BackgroundIntensity float64   `json:"backgroundIntensity"`
	Theme               Theme     `json:"theme"`
	ColorShift          float64   `json:"colorShift"`
	AudioIntensity      float64   `json:"audioIntensity"`
	Hash                string    `json:"hash"`
	LayerCount          int       `json:"layerCount"`
}

const (
	minLayerCount = 5
	maxLayerCount = 25
	minDuration   = 10.0
)

// Generate builds the composition for a seed against a catalog. It is a
// pure function: the same seed and the same catalog (contents and order)
// always produce a bit-identical result. An empty catalog returns nil,
// which means "not ready", distinct from a composition with no elements.
func Generate(seed common.Hash, catalog Catalog) *Composition {
	if len(catalog) == 0 {
		return nil
	}

	seedHex := seed.Hex()
	g := NewGenerator(seedHex)

	theme := Choice(g, Themes)

	layerCount := len(catalog)
	if layerCount >= minLayerCount {
		max := len(catalog)
		if max > maxLayerCount {
			max = maxLayerCount
		}
		layerCount = g.Integer(minLayerCount, max)
	}

	// Draw order defines the z-order.
	selected := Choices(g, catalog, layerCount)

	elements := make([]Element, 0, len(selected))
	currentTime := 0.0
	baseDuration := g.Range(2, 6)

	for i, entry := range selected {
		duration := baseDuration + g.Range(-1, 2)
		scale := g.Range(0.4, 2.0)
		opacity := g.Range(0.2, 1.0)
		rotation := g.Range(0, 360)
		positionX := g.Range(-30, 130)
		positionY := g.Range(-30, 130)
		blendMode := Choice(g, BlendModes)
		effectID := g.Integer(0, 8)

		elements = append(elements, Element{
			VideoKey:  entry.Name,
			VideoName: displayName(entry.Name),
			IpfsURI:   entry.IpfsURI,
			StartTime: currentTime,
			Duration:  duration,
			Scale:     scale,
			Opacity:   opacity,
			Rotation:  rotation,
			PositionX: positionX,
			PositionY: positionY,
			BlendMode: blendMode,
			EffectID:  effectID,
			ZIndex:    i,
		})

		// Each layer starts partway into the previous one.
		currentTime += duration * (0.3 + g.Range(-0.15, 0.3))
	}

	totalDuration := minDuration
	for _, el := range elements {
		if end := el.StartTime + el.Duration; end > totalDuration {
			totalDuration = end
		}
	}

	backgroundIntensity := g.Range(0.05, 0.9)
	colorShift := g.Range(0, 360)
	audioIntensity := g.Range(0.3, 1.0)

	return &Composition{
		Seed:                seedHex,
		Elements:            elements,
		TotalDuration:       math.Round(totalDuration*10) / 10,
		BackgroundIntensity: backgroundIntensity,
		Theme:               theme,
		ColorShift:          colorShift,
		AudioIntensity:      audioIntensity,
		Hash:                seedHex[:16],
		LayerCount:          len(selected),
	}
}

func displayName(key string) string {
	name := strings.Replace(key, ".mp4", "", 1)
	if len(name) > 20 {
		name = name[:20]
	}

	return name
}
