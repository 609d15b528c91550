// Package config gathers the settings of a vxclone run from defaults, an
// optional TOML file, the environment and the command line.
package config

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/robotalks/vxclone/pkg/clone"
	"github.com/robotalks/vxclone/pkg/link"
	"github.com/robotalks/vxclone/pkg/monitor"
)

// Config provides the options of a vxclone run.
type Config struct {
	// Port is the serial device, e.g. /dev/ttyUSB0. Empty picks the first
	// USB serial adapter.
	Port string
	// MQTTURL enables the transfer monitor, e.g. mqtt://host:1883/vxclone/
	MQTTURL string
	// Modded applies the freeband patch for radios with the hardware mod.
	Modded bool

	SettleDelay   time.Duration
	BreakDuration time.Duration

	// Prompt asks the operator to prepare the radio before a transfer.
	Prompt bool

	// ConfigFile is an optional TOML file.
	ConfigFile string
}

// Setting keys, shared by the TOML file and the precedence rules.
const (
	keyPort          = "port"
	keyMQTTURL       = "mqtt_url"
	keyModded        = "modded"
	keySettleDelay   = "settle_delay"
	keyBreakDuration = "break_duration"
	keyPrompt        = "prompt"
)

var defaultConfig = Config{
	SettleDelay:   clone.DefaultSettleDelay,
	BreakDuration: clone.DefaultBreakDuration,
	Prompt:        true,
}

// keys set from the environment, the config file can't override them.
var envKeys = make(map[string]bool)

func init() {
	applyEnv(&defaultConfig, envKeys, os.Getenv)
}

func applyEnv(c *Config, set map[string]bool, getenv func(string) string) {
	if val := getenv("VXCLONE_PORT"); val != "" {
		c.Port = val
		set[keyPort] = true
	}
	if val := getenv("VXCLONE_MQTT_URL"); val != "" {
		c.MQTTURL = val
		set[keyMQTTURL] = true
	}
	if val := getenv("VXCLONE_CONFIG"); val != "" {
		c.ConfigFile = val
	}
}

// flag name to setting key.
var flagKeys = map[string]string{
	"port":           keyPort,
	"mqtt-url":       keyMQTTURL,
	"modded":         keyModded,
	"settle-delay":   keySettleDelay,
	"break-duration": keyBreakDuration,
	"prompt":         keyPrompt,
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	setupFlags(flag.CommandLine, &defaultConfig)
}

func setupFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.Port, "port", c.Port, "Serial device connected to the radio.")
	fs.StringVar(&c.MQTTURL, "mqtt-url", c.MQTTURL, "MQTT broker URL to publish transfer progress, e.g. mqtt://host:1883/vxclone/")
	fs.BoolVar(&c.Modded, "modded", c.Modded, "Radio has the freeband hardware mod (modwrite).")
	fs.DurationVar(&c.SettleDelay, "settle-delay", c.SettleDelay, "Pause in front of each ACK exchange.")
	fs.DurationVar(&c.BreakDuration, "break-duration", c.BreakDuration, "Break held after each byte written to the radio.")
	fs.BoolVar(&c.Prompt, "prompt", c.Prompt, "Ask before each transfer to put the radio in clone mode.")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "TOML config file.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load returns the effective config. Values from the config file apply
// unless the same setting comes from the environment or the command line.
func Load() (*Config, error) {
	return load(flag.CommandLine, defaultConfig, envKeys)
}

// MustLoad loads the config and fails on error.
func MustLoad() *Config {
	conf, err := Load()
	if err != nil {
		log.Fatalln(err)
	}
	return conf
}

func load(fs *flag.FlagSet, base Config, env map[string]bool) (*Config, error) {
	conf := base
	if conf.ConfigFile == "" {
		return &conf, nil
	}
	set := make(map[string]bool)
	for key := range env {
		set[key] = true
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			set[key] = true
		}
	})
	if err := conf.applyFile(conf.ConfigFile, set); err != nil {
		return nil, err
	}
	return &conf, nil
}

// PortPath returns the configured port, or the first USB serial adapter.
func (c *Config) PortPath() (string, error) {
	if c.Port != "" {
		return c.Port, nil
	}
	if port := link.DefaultPort(); port != "" {
		return port, nil
	}
	return "", errors.New("no serial device found, use -port")
}

// Opener returns the link opener for the configured port.
func (c *Config) Opener() (link.Opener, error) {
	path, err := c.PortPath()
	if err != nil {
		return nil, err
	}
	return link.NewOpener(path), nil
}

// EngineOptions returns the clone engine options for the timing settings.
func (c *Config) EngineOptions() []clone.Option {
	return []clone.Option{
		clone.WithSettleDelay(c.SettleDelay),
		clone.WithBreakDuration(c.BreakDuration),
	}
}

// NewMonitor connects the transfer monitor, nil if not configured.
func (c *Config) NewMonitor() (*monitor.Monitor, error) {
	if c.MQTTURL == "" {
		return nil, nil
	}
	return monitor.NewFromURL(c.MQTTURL)
}
