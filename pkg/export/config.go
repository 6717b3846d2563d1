package export

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// AllTables lists every exportable table, in export order.
var AllTables = []string{"profiles", "posts", "follows", "likes", "referrals"}

type Config struct {
	OutputDir string
	Tables    []string
}

func NewConfig() (*Config, error) {
	conf := new(Config)
	return conf, conf.Init()
}

func (c *Config) Init() error {
	viper.BindEnv(EXPORT_OUTPUT_DIR_TOML, EXPORT_OUTPUT_DIR)
	viper.BindEnv(EXPORT_TABLES_TOML, EXPORT_TABLES)

	outputDir := viper.GetString(EXPORT_OUTPUT_DIR_TOML)
	if outputDir == "" {
		return errors.New("export output dir cannot be empty")
	}
	tables := viper.GetStringSlice(EXPORT_TABLES_TOML)
	if len(tables) == 0 {
		tables = AllTables
	}
	for _, table := range tables {
		if !knownTable(table) {
			return fmt.Errorf("unknown export table %q", table)
		}
	}
	c.OutputDir = outputDir
	c.Tables = tables
	return nil
}

func knownTable(name string) bool {
	for _, t := range AllTables {
		if t == name {
			return true
		}
	}
	return false
}
