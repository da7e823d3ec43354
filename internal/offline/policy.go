package offline

import "fmt"

// Policy names the request-resolution strategy. Two variants shipped
// over the app's history; they are mutually exclusive, so the choice
// is a constructor parameter rather than a build-time fork.
type Policy string

const (
	// PolicyCacheFirst serves cached copies, populating the cache
	// opportunistically from the network. The default: it matches the
	// variant that actually shipped.
	PolicyCacheFirst Policy = "cache-first"

	// PolicyNetworkFirst always tries the network, keeping the cache
	// fresh, and degrades to cache then to the fallback document.
	PolicyNetworkFirst Policy = "network-first"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCacheFirst, PolicyNetworkFirst:
		return Policy(s), nil
	case "":
		return PolicyCacheFirst, nil
	}
	return "", fmt.Errorf("offline: unknown policy %q", s)
}
