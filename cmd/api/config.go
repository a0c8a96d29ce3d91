package main

import (
	"net/url"
	"os"
	"strings"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/ceptorclub/ceptor/core"
)

type Config struct {
	Server Server      `yaml:"server"`
	Ceptor core.Config `yaml:"ceptor"`
}

type Server struct {
	Dsn           string `yaml:"dsn"`
	DBName        string `yaml:"dbName"`
	Port          string `yaml:"port"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

// Load loads config from given path. A missing file leaves c untouched.
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "failed to open configuration file")
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(c)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration file")
	}

	return nil
}

// LoadEnv reads .env files when present and applies environment overrides
func (c *Config) LoadEnv(filenames ...string) error {
	for _, filename := range filenames {
		if err := godotenv.Load(filename); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return errors.Wrap(err, "failed to load "+filename)
		}
	}

	override := func(target *string, key string) {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*target = value
		}
	}

	override(&c.Server.Dsn, "DB_CONN_STRING")
	override(&c.Server.DBName, "DB_NAME")
	override(&c.Server.Port, "PORT")
	override(&c.Server.RedisAddr, "REDIS_ADDR")
	override(&c.Server.MemcachedAddr, "MEMCACHED_ADDR")
	override(&c.Ceptor.APIKey, "API_KEY")
	override(&c.Ceptor.FrontendURL, "FRONTEND_URL")
	override(&c.Ceptor.Image.Endpoint, "IMAGE_ENDPOINT")

	if endpoint := os.Getenv("TRACE_ENDPOINT"); endpoint != "" {
		c.Server.TraceEndpoint = endpoint
		c.Server.EnableTrace = true
	}
	if list := os.Getenv("DB_COLLECTION"); list != "" {
		c.Ceptor.Collections = core.ParseCollections(list)
	}

	c.Ceptor.Collections = c.Ceptor.Collections.WithDefaults()
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}

	return nil
}

// DSN returns the connection string with the database name applied
func (c *Config) DSN() string {
	dsn := c.Server.Dsn
	if c.Server.DBName == "" {
		return dsn
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil || strings.Trim(u.Path, "/") != "" {
			return dsn
		}
		u.Path = "/" + c.Server.DBName
		return u.String()
	}

	if strings.Contains(dsn, "dbname=") {
		return dsn
	}
	return strings.TrimSpace(dsn + " dbname=" + c.Server.DBName)
}
