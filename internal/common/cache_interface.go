package common

import "time"

// CacheInterface abstracts the fetch cache so the pipeline can run against
// the in-process cache locally and Redis when several seeder runs share a
// host. Values are raw response bodies.
type CacheInterface interface {
	Set(key string, value []byte, duration time.Duration)
	Get(key string) ([]byte, bool)
	Delete(key string)
	Close() error
}
