package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inodb/cellbase-go/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cellbase configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/" + configFileName + ".",
		Example: `  cellbase config                            # show the effective config
  cellbase config set species mmusculus      # query mouse by default
  cellbase config set options.limit 10       # default query option
  cellbase config get host                   # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))

	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set host, version, species or options.<name> in the config file.\nThe file is created if it does not exist.",
		Args:  cobra.ExactArgs(2),
		Annotations: map[string]string{
			createsConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigGet(cmd, args[0])
		},
	}
}

func (a *app) runConfigShow(cmd *cobra.Command) error {
	cfg, err := a.configuration()
	if err != nil {
		return err
	}
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	if path, err := a.configFile(); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "# Config file: %s\n", path)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// parseValue converts boolean-like and numeric strings so they are stored
// with their YAML types.
func parseValue(value string) any {
	switch value {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}

// configKey splits a "host" or "options.limit" key. Top level keys are
// case insensitive; option names keep their case.
func configKey(key string) (top, option string, err error) {
	top, option, nested := strings.Cut(key, ".")
	top = strings.ToLower(top)
	switch {
	case top == "options" && nested && option != "":
		return top, option, nil
	case !nested && (top == "host" || top == "version" || top == "species"):
		return top, "", nil
	}
	return "", "", fmt.Errorf("unknown config key %q (want host, version, species or options.<name>)", key)
}

func (a *app) runConfigSet(cmd *cobra.Command, key, value string) error {
	top, option, err := configKey(key)
	if err != nil {
		return err
	}

	cfgFile, err := a.configFile()
	if err != nil {
		return err
	}

	doc := map[string]any{}
	data, err := os.ReadFile(cfgFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config %s: %w", cfgFile, err)
		}
	}

	if option != "" {
		opts, _ := doc["options"].(map[string]any)
		if opts == nil {
			opts = map[string]any{}
		}
		opts[option] = parseValue(value)
		doc["options"] = opts
	} else {
		doc[top] = value
	}

	// Refuse to write a file that could not be loaded back.
	if _, err := config.FromMap(doc); err != nil {
		return err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfgFile), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(cfgFile, out, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func (a *app) runConfigGet(cmd *cobra.Command, key string) error {
	top, option, err := configKey(key)
	if err != nil {
		return err
	}
	cfg, err := a.configuration()
	if err != nil {
		return err
	}

	var val any
	switch top {
	case "host":
		val = cfg.Host()
	case "version":
		val = cfg.Version()
	case "species":
		val = cfg.Species()
	case "options":
		v, ok := cfg.Options()[option]
		if !ok {
			return fmt.Errorf("key %q is not set", key)
		}
		val = v
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), val)
	return err
}
