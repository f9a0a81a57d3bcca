package cache

const (
	CacheVersion = "v1"
	// ResponseKeyPattern is formatted with the feature name and the parameter digest.
	ResponseKeyPattern  = CacheVersion + ":%s:%s"
	FeatureKeyPattern   = CacheVersion + ":%s:*"
	AllResponsesPattern = CacheVersion + ":*"

	// NamespacePrefix is prepended, together with a per-process instance id, to keys
	// written to shared backends.
	NamespacePrefix = "creator-insights"

	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeValkey = "valkey"
	TypeNoop   = "noop"
)
