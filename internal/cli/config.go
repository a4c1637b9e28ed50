package cli

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratum/pkg/errors"
)

// defaultConfigFile is read from the working directory when --config is not
// given. A missing default file is not an error.
const defaultConfigFile = appName + ".toml"

// fileConfig is the layout of stratum.toml:
//
//	[input]
//	node = "mesh.1.node"
//	edge = "mesh.1.edge"
//
//	[log]
//	level = "debug"
//
//	[slice]
//	origin_element = true
//	reverse = false
type fileConfig struct {
	Input struct {
		Node string `toml:"node"`
		Edge string `toml:"edge"`
	} `toml:"input"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`

	// Pointers distinguish "unset" from false.
	Slice struct {
		OriginElement *bool `toml:"origin_element"`
		Reverse       *bool `toml:"reverse"`
	} `toml:"slice"`
}

// readConfig decodes the config file at path. An empty path reads
// defaultConfigFile if it exists and returns an empty config otherwise.
func readConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return &fileConfig{}, nil
			}
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	var cfg fileConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s: %v", path, err)
	}
	if cfg.Log.Level != "" {
		if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown log level %q", path, cfg.Log.Level)
		}
	}
	return &cfg, nil
}

// loadConfig reads the config file and applies its log level.
func (c *CLI) loadConfig() error {
	cfg, err := readConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	if cfg.Log.Level != "" {
		level, _ := log.ParseLevel(cfg.Log.Level)
		c.SetLogLevel(level)
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "node", cfg.Input.Node, "edge", cfg.Input.Edge)
	return nil
}

// inputFiles resolves the .node and .edge paths. Two leading positional
// arguments win; otherwise the [input] section is used and all arguments are
// returned as rest.
func (c *CLI) inputFiles(args []string) (node, edge string, rest []string, err error) {
	if len(args) >= 2 {
		return args[0], args[1], args[2:], nil
	}
	node, edge = c.config.Input.Node, c.config.Input.Edge
	if node == "" || edge == "" {
		return "", "", nil, errors.New(errors.ErrCodeInvalidInput,
			"missing .node and .edge files: pass them as arguments or set [input] in %s", defaultConfigFile)
	}
	return node, edge, args, nil
}
