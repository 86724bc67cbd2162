package ipfsutil

import (
	"fmt"
	"strings"

	cid "github.com/ipfs/go-cid"
	mc "github.com/multiformats/go-multicodec"
	mh "github.com/multiformats/go-multihash"
)

var pref = cid.Prefix{
	Version:  1,
	Codec:    uint64(mc.Raw),
	MhType:   mh.SHA2_256,
	MhLength: -1, // default length
}

// ComputeCID returns the CIDv1 of raw data, matching the pinning service
// with cidVersion=1.
func ComputeCID(data []byte) (cid.Cid, error) {
	return pref.Sum(data)
}

func URI(c string) string {
	return "ipfs://" + c
}

func GatewayURL(gateway, c string) string {
	return fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), c)
}

// ParseURI extracts and validates the CID of an ipfs:// URI.
func ParseURI(uri string) (cid.Cid, error) {
	if !strings.HasPrefix(uri, "ipfs://") {
		return cid.Undef, fmt.Errorf("not an ipfs uri: %s", uri)
	}

	return cid.Decode(strings.TrimPrefix(uri, "ipfs://"))
}
