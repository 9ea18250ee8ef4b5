package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ClassroomCatalogKey returns the cache key for the full classroom snapshot
func (r *CacheKeyStruct) ClassroomCatalogKey() string {
	return "classrooms:catalog"
}

// SessionKey returns the cache key for a login session identified by its token ID
func (r *CacheKeyStruct) SessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

var CacheKey = NewCacheKeyStruct()
