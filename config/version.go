package config

// Version is overridden at build time with -ldflags "-X menlo.ai/creator-insights-gateway/config.Version=...".
var Version = "dev"
