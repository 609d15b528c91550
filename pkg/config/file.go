package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Port          string `toml:"port"`
	MQTTURL       string `toml:"mqtt_url"`
	Modded        bool   `toml:"modded"`
	SettleDelay   string `toml:"settle_delay"`
	BreakDuration string `toml:"break_duration"`
	Prompt        bool   `toml:"prompt"`
}

// applyFile loads settings from a TOML file, skipping the keys in skip.
func (c *Config) applyFile(path string, skip map[string]bool) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, keys[0].String())
	}
	defined := func(key string) bool {
		return meta.IsDefined(key) && !skip[key]
	}

	if defined(keyPort) {
		c.Port = strings.TrimSpace(raw.Port)
	}
	if defined(keyMQTTURL) {
		c.MQTTURL = strings.TrimSpace(raw.MQTTURL)
	}
	if defined(keyModded) {
		c.Modded = raw.Modded
	}
	if defined(keySettleDelay) {
		d, err := parseDuration(keySettleDelay, raw.SettleDelay)
		if err != nil {
			return err
		}
		c.SettleDelay = d
	}
	if defined(keyBreakDuration) {
		d, err := parseDuration(keyBreakDuration, raw.BreakDuration)
		if err != nil {
			return err
		}
		c.BreakDuration = d
	}
	if defined(keyPrompt) {
		c.Prompt = raw.Prompt
	}
	return nil
}

func parseDuration(key, val string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s: negative duration %s", key, d)
	}
	return d, nil
}
