package ratelimit

import (
	"strings"
)

// unlimited are endpoints that are never throttled: probes, scrapes and the
// payment gateway's webhook deliveries.
var unlimited = []EndpointConfig{
	{Path: "/health", Method: "GET"},
	{Path: "/metrics", Method: "GET"},
	{Path: "/webhooks/", Method: "POST"},
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil if no configuration matches. Exact paths win over prefixes.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if match(path, method, unlimited) != nil {
		return &EndpointConfig{Limit: 0}
	}
	return match(path, method, configs)
}

func match(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
