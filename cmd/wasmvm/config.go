package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// config is the TOML config file of the CLI, ex.
//
//	[runtime]
//	strict_unsupported = false
//	fail_fast = false
//
//	[log]
//	level = "warn"
//	format = "console"
type config struct {
	Runtime runtimeConfig `toml:"runtime"`
	Log     logConfig     `toml:"log"`
}

type runtimeConfig struct {
	StrictUnsupported bool `toml:"strict_unsupported"`
	FailFast          bool `toml:"fail_fast"`
}

type logConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func defaultConfig() *config {
	return &config{Log: logConfig{Level: "warn", Format: "console"}}
}

// loadConfig decodes the file at path over the defaults. Unknown keys are an error, as they are likely typos.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := defaultConfig()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return c, nil
}

// resolveConfig loads the --config file, if set, then applies any flags the user set.
func resolveConfig(cmd *cobra.Command) (*config, error) {
	c := defaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if c, err = loadConfig(path); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		c.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("strict") {
		c.Runtime.StrictUnsupported, _ = flags.GetBool("strict")
	}
	if flags.Changed("fail-fast") {
		c.Runtime.FailFast, _ = flags.GetBool("fail-fast")
	}
	return c, nil
}
