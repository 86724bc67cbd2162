package generative

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/videodanza/backend/pkg/crypto"
	"github.com/videodanza/backend/pkg/enum"
)

func sampleCatalog(n int) Catalog {
	catalog := make(Catalog, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("danza_%02d.mp4", i)
		catalog = append(catalog, CatalogEntry{
			Name:       name,
			CID:        fmt.Sprintf("bafy-fake-%02d", i),
			IpfsURI:    fmt.Sprintf("ipfs://bafy-fake-%02d", i),
			GatewayURL: fmt.Sprintf("https://gateway.pinata.cloud/ipfs/bafy-fake-%02d", i),
			FileSize:   int64(1000 + i),
			UploadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}

	return catalog
}

func Test_Generate_Determinism(t *testing.T) {
	seed := crypto.SeedFromPhrase("flowing in silence")
	catalog := sampleCatalog(8)

	first := Generate(seed, catalog)
	second := Generate(seed, catalog)

	require.NotNil(t, first)
	require.Equal(t, first, second)
}

func Test_Generate_EmptyCatalog(t *testing.T) {
	seed := crypto.SeedFromPhrase("anything")
	require.Nil(t, Generate(seed, Catalog{}))
	require.Nil(t, Generate(seed, nil))
}

func Test_Generate_LayerCountBounds(t *testing.T) {
	seed := crypto.SeedFromPhrase("layer bounds")

	for _, n := range []int{5, 8, 12, 25, 30, 60} {
		comp := Generate(seed, sampleCatalog(n))
		require.NotNil(t, comp)

		max := n
		if max > 25 {
			max = 25
		}
		require.GreaterOrEqual(t, comp.LayerCount, 5, "catalog size %d", n)
		require.LessOrEqual(t, comp.LayerCount, max, "catalog size %d", n)
		require.Len(t, comp.Elements, comp.LayerCount)
	}
}

func Test_Generate_SmallCatalog(t *testing.T) {
	seed := crypto.SeedFromPhrase("small catalog")

	for n := 1; n < 5; n++ {
		comp := Generate(seed, sampleCatalog(n))
		require.NotNil(t, comp)
		require.Equal(t, n, comp.LayerCount)
		require.Len(t, comp.Elements, n)
	}
}

func Test_Generate_NoDuplicateLayers(t *testing.T) {
	seed := crypto.SeedFromPhrase("no duplicates")
	comp := Generate(seed, sampleCatalog(20))
	require.NotNil(t, comp)

	seen := map[string]bool{}
	for _, el := range comp.Elements {
		require.False(t, seen[el.VideoKey], "video %s appears twice", el.VideoKey)
		seen[el.VideoKey] = true
	}
}

func Test_Generate_TotalDuration(t *testing.T) {
	for i := 0; i < 50; i++ {
		seed := crypto.SeedFromPhrase(fmt.Sprintf("duration %d", i))
		comp := Generate(seed, sampleCatalog(10))
		require.NotNil(t, comp)
		require.GreaterOrEqual(t, comp.TotalDuration, 10.0)

		for _, el := range comp.Elements {
			require.LessOrEqual(t, el.StartTime+el.Duration, comp.TotalDuration+0.05)
		}
	}
}

func Test_Generate_ElementRanges(t *testing.T) {
	seed := crypto.SeedFromPhrase("ranges")
	comp := Generate(seed, sampleCatalog(25))
	require.NotNil(t, comp)

	require.Contains(t, Themes, comp.Theme)

	// The drawn theme round-trips through the enum registry.
	theme, err := enum.ToEnum[Theme](string(comp.Theme))
	require.NoError(t, err)
	require.Equal(t, comp.Theme, theme)

	require.GreaterOrEqual(t, comp.BackgroundIntensity, 0.05)
	require.Less(t, comp.BackgroundIntensity, 0.9)
	require.GreaterOrEqual(t, comp.ColorShift, 0.0)
	require.Less(t, comp.ColorShift, 360.0)
	require.GreaterOrEqual(t, comp.AudioIntensity, 0.3)
	require.Less(t, comp.AudioIntensity, 1.0)

	for i, el := range comp.Elements {
		require.Equal(t, i, el.ZIndex)
		require.GreaterOrEqual(t, el.Scale, 0.4)
		require.Less(t, el.Scale, 2.0)
		require.GreaterOrEqual(t, el.Opacity, 0.2)
		require.Less(t, el.Opacity, 1.0)
		require.GreaterOrEqual(t, el.Rotation, 0.0)
		require.Less(t, el.Rotation, 360.0)
		require.GreaterOrEqual(t, el.PositionX, -30.0)
		require.Less(t, el.PositionX, 130.0)
		require.GreaterOrEqual(t, el.PositionY, -30.0)
		require.Less(t, el.PositionY, 130.0)
		require.Contains(t, BlendModes, el.BlendMode)

		blend, err := enum.ToEnum[BlendMode](string(el.BlendMode))
		require.NoError(t, err)
		require.Equal(t, el.BlendMode, blend)

		require.GreaterOrEqual(t, el.EffectID, 0)
		require.LessOrEqual(t, el.EffectID, 8)
		require.NotEmpty(t, el.IpfsURI)
	}
}

func Test_Generate_CatalogSensitivity(t *testing.T) {
	seed := crypto.SeedFromPhrase("catalog coupling")
	catalog := sampleCatalog(8)

	base := Generate(seed, catalog)
	require.NotNil(t, base)

	// Reordering the catalog changes which videos land on which layers.
	reversed := make(Catalog, len(catalog))
	for i, e := range catalog {
		reversed[len(catalog)-1-i] = e
	}
	require.NotEqual(t, base, Generate(seed, reversed))

	// Renaming a single entry is observable too.
	renamed := make(Catalog, len(catalog))
	copy(renamed, catalog)
	for i := range renamed {
		renamed[i].Name = "other_" + renamed[i].Name
	}
	require.NotEqual(t, base, Generate(seed, renamed))
}

func Test_Generate_Scenario_FlowingInSilence(t *testing.T) {
	seed := crypto.SeedFromPhrase("flowing in silence")
	catalog := sampleCatalog(8)

	comp := Generate(seed, catalog)
	require.NotNil(t, comp)
	require.GreaterOrEqual(t, comp.LayerCount, 5)
	require.LessOrEqual(t, comp.LayerCount, 8)
	require.GreaterOrEqual(t, comp.TotalDuration, 10.0)
	require.Contains(t, Themes, comp.Theme)
	require.Equal(t, seed.Hex(), comp.Seed)
	require.Equal(t, seed.Hex()[:16], comp.Hash)
	require.Equal(t, comp, Generate(seed, catalog))
}
