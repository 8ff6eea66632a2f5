package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxTokenMetadata is used for prefixing cached token metadata
	PfxTokenMetadata = "tokenMetadata"
	// PfxEnsName is used for prefixing cached reverse ens lookups
	PfxEnsName = "ensName"
	// PfxEnsAddress is used for prefixing cached forward ens lookups
	PfxEnsAddress = "ensAddress"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}
