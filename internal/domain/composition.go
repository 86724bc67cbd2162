package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/videodanza/backend/internal/generative"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/pkg/crypto"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/ipfsutil"
	"github.com/videodanza/backend/pkg/xcontext"
)

type CompositionDomain interface {
	GetComposition(context.Context, *model.GetCompositionRequest) (*model.GetCompositionResponse, error)
	UploadMetadata(context.Context, *model.UploadMetadataRequest) (*model.UploadMetadataResponse, error)
}

type compositionDomain struct {
	catalogDomain CatalogDomain
	publisher     MetadataPublisher
}

// MetadataPublisher pins a metadata document and returns its CID.
type MetadataPublisher interface {
	PinJSON(ctx context.Context, name string, doc any) (string, error)
}

func NewCompositionDomain(catalogDomain CatalogDomain, publisher MetadataPublisher) *compositionDomain {
	return &compositionDomain{
		catalogDomain: catalogDomain,
		publisher:     publisher,
	}
}

func (d *compositionDomain) GetComposition(
	ctx context.Context, req *model.GetCompositionRequest,
) (*model.GetCompositionResponse, error) {
	seed, err := d.resolveSeed(req.Phrase, req.Seed)
	if err != nil {
		return nil, err
	}

	catalog, err := d.catalogDomain.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	comp := generative.Generate(seed, catalog)
	if comp == nil {
		// Empty catalog: a defined waiting state, not an error.
		return &model.GetCompositionResponse{Ready: false}, nil
	}

	return toCompositionResponse(comp), nil
}

func (d *compositionDomain) UploadMetadata(
	ctx context.Context, req *model.UploadMetadataRequest,
) (*model.UploadMetadataResponse, error) {
	if req.Phrase == "" {
		return nil, errorx.New(errorx.BadRequest, "Seed phrase required")
	}

	seed := crypto.SeedFromPhrase(req.Phrase)

	catalog, err := d.catalogDomain.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	comp := generative.Generate(seed, catalog)
	if comp == nil {
		return nil, errorx.New(errorx.Unavailable, "Video catalog is empty")
	}

	doc := BuildMetadataDocument(comp, req.Phrase, req.TokenID, req.Image, req.AnimationURL)

	hash, err := d.publisher.PinJSON(ctx, doc.Name, doc)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pin metadata: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Publishing service is unavailable")
	}

	if _, err := ipfsutil.ParseURI(ipfsutil.URI(hash)); err != nil {
		xcontext.Logger(ctx).Errorf("Pinning service returned invalid cid %q: %v", hash, err)
		return nil, errorx.New(errorx.BadResponse, "Publishing service returned an invalid content id")
	}

	gateway := xcontext.Configs(ctx).Pinata.GatewayURL
	return &model.UploadMetadataResponse{
		MetadataURI: ipfsutil.URI(hash),
		GatewayURL:  ipfsutil.GatewayURL(gateway, hash),
	}, nil
}

func (d *compositionDomain) resolveSeed(phrase, seedHex string) (common.Hash, error) {
	if phrase != "" {
		return crypto.SeedFromPhrase(phrase), nil
	}

	seed, err := crypto.ParseSeed(seedHex)
	if err != nil {
		return common.Hash{}, errorx.New(errorx.BadRequest, "Invalid seed")
	}

	return seed, nil
}

// BuildMetadataDocument packages a composition into the token metadata
// JSON published alongside the mint.
func BuildMetadataDocument(
	comp *generative.Composition, phrase string, tokenID int64, image, animationURL string,
) *model.MetadataDocument {
	names := make([]string, 0, len(comp.Elements))
	for _, el := range comp.Elements {
		names = append(names, el.VideoName)
	}

	videoNames := strings.Join(names, ", ")
	if len(videoNames) > 100 {
		videoNames = videoNames[:100]
	}

	name := "VideoDanza"
	if tokenID > 0 {
		name = fmt.Sprintf("VideoDanza #%d", tokenID)
	}

	return &model.MetadataDocument{
		Name:         name,
		Description:  "Unique generative videodanza piece. Deterministic composition derived from a unique seed.",
		Image:        image,
		AnimationURL: animationURL,
		Attributes: []model.MetadataAttribute{
			{TraitType: "Seed", Value: phrase},
			{TraitType: "Theme", Value: string(comp.Theme)},
			{TraitType: "Layer Count", Value: fmt.Sprintf("%d", comp.LayerCount)},
			{TraitType: "Videos Base", Value: videoNames},
			{TraitType: "Background Intensity", Value: fmt.Sprintf("%.2f", comp.BackgroundIntensity)},
			{TraitType: "Audio Intensity", Value: fmt.Sprintf("%.2f", comp.AudioIntensity)},
		},
	}
}

func toCompositionResponse(comp *generative.Composition) *model.GetCompositionResponse {
	elements := make([]model.CompositionElement, 0, len(comp.Elements))
	for _, el := range comp.Elements {
		elements = append(elements, model.CompositionElement{
			VideoKey:  el.VideoKey,
			VideoName: el.VideoName,
			IpfsURI:   el.IpfsURI,
			StartTime: el.StartTime,
			Duration:  el.Duration,
			Scale:     el.Scale,
			Opacity:   el.Opacity,
			Rotation:  el.Rotation,
			PositionX: el.PositionX,
			PositionY: el.PositionY,
			BlendMode: string(el.BlendMode),
			EffectID:  el.EffectID,
			ZIndex:    el.ZIndex,
		})
	}

	return &model.GetCompositionResponse{
		Ready:               true,
		Seed:                comp.Seed,
		Elements:            elements,
		TotalDuration:       comp.TotalDuration,
		BackgroundIntensity: comp.BackgroundIntensity,
		Theme:               string(comp.Theme),
		ColorShift:          comp.ColorShift,
		AudioIntensity:      comp.AudioIntensity,
		Hash:                comp.Hash,
		LayerCount:          comp.LayerCount,
	}
}
