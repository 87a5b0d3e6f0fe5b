package config

import "path/filepath"

const (
	storageBackendVar = "TRUEDEV_STORAGE"
	storagePathVar    = "TRUEDEV_STORAGE_PATH"
	redisAddrVar      = "REDIS_ENDPOINT"
	redisPasswordVar  = "REDIS_PASSWORD"
	redisDBVar        = "REDIS_DB"
	redisPrefixVar    = "REDIS_PREFIX"
)

// Storage backends understood by GetStorageBackend.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Storage struct {
	file *File
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() string {
	return GetEnv(storageBackendVar, orDefault(s.file.Storage.Backend, StorageFile))
}

func (s Storage) GetStoragePath() string {
	return GetEnv(storagePathVar, orDefault(s.file.Storage.Path, filepath.Join(homeDir(), ".truedev", "session.json")))
}

func (s Storage) GetRedisAddr() string {
	return GetEnv(redisAddrVar, orDefault(s.file.Storage.Redis.Addr, "localhost:6379"))
}

func (s Storage) GetRedisPassword() string {
	return GetEnv(redisPasswordVar, s.file.Storage.Redis.Password)
}

func (s Storage) GetRedisDB() int {
	return GetEnvInt(redisDBVar, s.file.Storage.Redis.DB)
}

func (s Storage) GetRedisPrefix() string {
	return GetEnv(redisPrefixVar, orDefault(s.file.Storage.Redis.Prefix, "truedev:"))
}
