package main

import (
	"strconv"
	"time"

	"github.com/horgh/catchat/internal/client"
	"github.com/horgh/config"
	"github.com/pkg/errors"
)

// Config holds the client's configuration.
type Config struct {
	Server string
	Port   string

	// Channel to join. A leading '#' is added if missing.
	Channel string

	Nick     string
	RealName string

	TLS bool

	// How long a read waits before we check for chat to send.
	PollInterval time.Duration

	// How long a write may take before we consider the connection dead.
	WriteTimeout time.Duration

	// Print messages as they are on the wire.
	Raw bool
}

// Default port to connect to.
const defaultPort = "6697"

func defaultConfig() Config {
	return Config{
		Port:         defaultPort,
		PollInterval: client.DefaultPollInterval,
		WriteTimeout: client.DefaultWriteTimeout,
	}
}

// buildConfig combines defaults, the config file if there is one, and the
// command line. The command line wins.
func buildConfig(args Args) (Config, error) {
	cfg := defaultConfig()

	if args.ConfigFile != "" {
		configMap, err := config.ReadStringMap(args.ConfigFile)
		if err != nil {
			return Config{}, errors.Wrap(err, "unable to read config")
		}

		if err := cfg.applyMap(configMap); err != nil {
			return Config{}, errors.Wrap(err, "configuration problem")
		}
	}

	cfg.applyArgs(args)

	if err := cfg.check(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyMap parses the values read from a config file.
func (c *Config) applyMap(configMap map[string]string) error {
	for key, value := range configMap {
		switch key {
		case "server":
			c.Server = value
		case "port":
			if _, err := strconv.ParseUint(value, 10, 16); err != nil {
				return errors.Errorf("port is not valid: %s", value)
			}
			c.Port = value
		case "channel":
			c.Channel = value
		case "nick":
			c.Nick = value
		case "realname":
			c.RealName = value
		case "tls":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return errors.Errorf("tls must be true or false: %s", value)
			}
			c.TLS = b
		case "raw":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return errors.Errorf("raw must be true or false: %s", value)
			}
			c.Raw = b
		case "poll-interval":
			d, err := parsePositiveDuration(value)
			if err != nil {
				return errors.Wrap(err, "poll interval is in invalid format")
			}
			c.PollInterval = d
		case "write-timeout":
			d, err := parsePositiveDuration(value)
			if err != nil {
				return errors.Wrap(err, "write timeout is in invalid format")
			}
			c.WriteTimeout = d
		default:
			return errors.Errorf("unknown key: %s", key)
		}
	}

	return nil
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.Errorf("duration must be positive: %s", s)
	}
	return d, nil
}

// applyArgs overrides with what was given on the command line.
func (c *Config) applyArgs(args Args) {
	if args.Server != "" {
		c.Server = args.Server
	}
	if args.Channel != "" {
		c.Channel = args.Channel
	}
	if args.Nick != "" {
		c.Nick = args.Nick
	}
	if args.Port != "" {
		c.Port = args.Port
	}
	if args.TLS != nil {
		c.TLS = *args.TLS
	}
	if args.Raw != nil {
		c.Raw = *args.Raw
	}
}

// check that everything we need is present.
func (c Config) check() error {
	required := []struct {
		key   string
		value string
	}{
		{"server", c.Server},
		{"channel", c.Channel},
		{"nick", c.Nick},
	}

	for _, r := range required {
		if len(r.value) == 0 {
			return errors.Errorf("missing required setting: %s", r.key)
		}
	}

	return nil
}
