package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/textvary/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TEXTVARY_"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with TEXTVARY_* variables. Empty variables are
// ignored; malformed numbers and durations are errors.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	e := envReader{lookup: lookup}

	e.setInt("LEVEL_LETTER", &cfg.Levels.Letter)
	e.setInt("LEVEL_WORD", &cfg.Levels.Word)
	e.setInt("LEVEL_EMOJI", &cfg.Levels.Emoji)
	e.setInt("LEVEL_TYPO", &cfg.Levels.Typo)
	e.setInt("LEVEL_CAPS", &cfg.Levels.Caps)
	e.setInt("LEVEL_PUNCT", &cfg.Levels.Punct)

	e.setInt("COUNT", &cfg.Generate.Count)
	e.setUint64("SEED", &cfg.Generate.Seed)
	e.setString("FORMAT", &cfg.Generate.Format)

	e.setString("CACHE_BACKEND", &cfg.Cache.Backend)
	e.setString("CACHE_DIR", &cfg.Cache.Dir)
	e.setDuration("CACHE_TTL", &cfg.Cache.TTL)
	e.setString("REDIS_ADDR", &cfg.Cache.Redis.Addr)
	e.setString("REDIS_PASSWORD", &cfg.Cache.Redis.Password)
	e.setInt("REDIS_DB", &cfg.Cache.Redis.DB)
	e.setString("REDIS_PREFIX", &cfg.Cache.Redis.Prefix)

	e.setString("STORE_BACKEND", &cfg.Store.Backend)
	e.setString("STORE_DIR", &cfg.Store.Dir)
	e.setString("MONGO_URI", &cfg.Store.Mongo.URI)
	e.setString("MONGO_DATABASE", &cfg.Store.Mongo.Database)
	e.setString("MONGO_COLLECTION", &cfg.Store.Mongo.Collection)

	e.setString("ADDR", &cfg.Server.Addr)
	e.setCSV("CORS_ORIGINS", &cfg.Server.CORSOrigins)
	e.setInt64("BODY_LIMIT", &cfg.Server.BodyLimit)
	e.setDuration("READ_TIMEOUT", &cfg.Server.ReadTimeout)
	e.setDuration("WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	e.setDuration("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	return e.err
}

// envReader reads prefixed variables and keeps the first parse error.
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	if e.err != nil || e.lookup == nil {
		return "", false
	}
	v, ok := e.lookup(EnvPrefix + key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(key string, err error) {
	e.err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s%s", EnvPrefix, key)
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setInt64(key string, dst *int64) {
	if v, ok := e.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setUint64(key string, dst *uint64) {
	if v, ok := e.get(key); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setDuration(key string, dst *Duration) {
	if v, ok := e.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		dst.Duration = d
	}
}

func (e *envReader) setCSV(key string, dst *[]string) {
	if v, ok := e.get(key); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*dst = out
	}
}
