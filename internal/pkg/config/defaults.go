package config

// EnvPrefix prefixes environment overrides, e.g. SALTLOCK_HASH_ALGORITHM
// overrides hash.algorithm.
const EnvPrefix = "SALTLOCK"

// defaults apply when neither the config file nor the environment sets a key.
var defaults = map[string]any{
	"app.name":                                    "saltlock",
	"app.server.http.address":                     ":8080",
	"app.server.http.read_timeout_seconds":        10,
	"app.server.http.read_header_timeout_seconds": 5,
	"app.server.http.write_timeout_seconds":       10,
	"app.server.http.idle_timeout_seconds":        60,
	"app.server.cors":                             "*",
	"app.server.max_goroutine":                    16,

	"instrument.enabled":                 false,
	"instrument.service_name":            "saltlock",
	"instrument.service_version":         "dev",
	"instrument.env":                     "local",
	"instrument.otlp_endpoint":           "localhost:4317",
	"instrument.otlp_secure":             false,
	"instrument.trace_sample_ratio":      1.0,
	"instrument.metric_interval_seconds": 15,
	"instrument.log_mask_fields":         "password,hash,authorization",

	"hash.algorithm":   "salted_sha256",
	"hash.bcrypt.cost": 10,

	"lock.store.driver":        "memory",
	"lock.store.redis.url":     "redis://localhost:6379/0",
	"lock.store.redis.prefix":  "saltlock:lock:",
	"lock.store.ttl_seconds":   0,
	"lock.password.max_length": 1024,
}
