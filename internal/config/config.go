// Package config reads the optional TOML file of the db-load tool.
//
//	[database]
//	url = "postgres://unipept@localhost:5432/unipept"
//	schema = "unipept"
//
//	[load]
//	data_dir = "/data/tables"
//	schema_file = "schemas/structure.sql"
//	workers = 4
//	index = true
//
// Precedence, lowest first: defaults, file, environment, flags. Flags are
// applied by the caller.
package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"unipept/internal/errors"
)

// EnvDatabaseURL overrides database.url.
const EnvDatabaseURL = "UNIPEPT_DATABASE_URL"

// DatabaseConfig locates the target database.
type DatabaseConfig struct {
	URL      string `toml:"url"`
	Schema   string `toml:"schema"`
	MaxConns int32  `toml:"max_conns"`
}

// LoadConfig controls what is loaded and how.
type LoadConfig struct {
	DataDir    string `toml:"data_dir"`
	SchemaFile string `toml:"schema_file"`
	Workers    int    `toml:"workers"`
	Index      bool   `toml:"index"`
}

// Config is the whole file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Load     LoadConfig     `toml:"load"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Schema: "unipept", MaxConns: 8},
		Load:     LoadConfig{Workers: 4},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path skips the file. Unknown keys are an error.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		if err != nil {
			return Config{}, errors.Mark(errors.Wrapf(err, "read config %s", path), errors.ErrConfig)
		}
		if und := md.Undecoded(); len(und) > 0 {
			keys := make([]string, len(und))
			for i, k := range und {
				keys[i] = k.String()
			}
			return Config{}, errors.Mark(
				errors.Newf("config %s: unknown key(s) %s", path, strings.Join(keys, ", ")),
				errors.ErrConfig)
		}
	}
	if v, ok := os.LookupEnv(EnvDatabaseURL); ok && v != "" {
		c.Database.URL = v
	}
	return c, nil
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether s can be used unquoted as a schema or table name.
func ValidIdent(s string) bool { return identRE.MatchString(s) }

// Validate checks the settings needed to run a load.
func (c Config) Validate() error {
	var problems []string
	if c.Database.URL == "" {
		problems = append(problems, "database url is empty (set --database-url, "+EnvDatabaseURL+" or [database].url)")
	}
	if !ValidIdent(c.Database.Schema) {
		problems = append(problems, "schema "+strconv.Quote(c.Database.Schema)+" is not a plain identifier")
	}
	if c.Load.DataDir == "" {
		problems = append(problems, "data directory is empty")
	}
	if c.Load.Workers < 1 {
		problems = append(problems, "workers must be >= 1")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.Mark(errors.Newf("invalid configuration: %s", strings.Join(problems, "; ")), errors.ErrConfig)
}
