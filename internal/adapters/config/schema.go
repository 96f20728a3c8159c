package config

// Projectfile represents the structure of the classmeta.yaml configuration file.
type Projectfile struct {
	Version           string    `yaml:"version"`
	Catalog           string    `yaml:"catalog"`
	Metadata          []string  `yaml:"metadata"`
	Formats           []string  `yaml:"formats"`
	Container         string    `yaml:"container"`
	IncludeInterfaces *bool     `yaml:"includeInterfaces"`
	Debug             bool      `yaml:"debug"`
	Cache             *CacheDTO `yaml:"cache"`
}

// CacheDTO represents the cache section of the configuration.
type CacheDTO struct {
	Backend  string     `yaml:"backend"`
	Dir      string     `yaml:"dir"`
	Compress *bool      `yaml:"compress"`
	Redis    *RedisDTO  `yaml:"redis"`
	SQLite   *SQLiteDTO `yaml:"sqlite"`
}

// RedisDTO represents the redis backend settings.
type RedisDTO struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	TTL      string `yaml:"ttl"`
}

// SQLiteDTO represents the sqlite backend settings.
type SQLiteDTO struct {
	Path string `yaml:"path"`
}
