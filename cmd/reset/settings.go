package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hexaflex/zxreset/devices/zxn/clock"
	"github.com/hexaflex/zxreset/devices/zxn/esx"
	"github.com/hexaflex/zxreset/machine"
)

// Settings defines machine and logging settings. Unlike Config, these do
// not come from the command line but from the environment (RESET_*) or an
// optional reset.yaml.
type Settings struct {
	Machine  machine.Settings
	LogLevel string
}

// loadSettings reads settings from v, falling back to defaults.
func loadSettings(v *viper.Viper) (*Settings, error) {
	def := machine.DefaultSettings()

	v.SetDefault("backend", def.Backend)
	v.SetDefault("register_file", def.RegisterFile)
	v.SetDefault("register_offset", def.RegisterOffset)
	v.SetDefault("boost_speed", "28mhz")
	v.SetDefault("dos_version", "48k")
	v.SetDefault("log_level", "warn")

	v.SetEnvPrefix("RESET")
	v.AutomaticEnv()

	v.SetConfigName("reset")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/reset")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read settings")
		}
	}

	speed, err := clock.ParseSpeed(v.GetString("boost_speed"))
	if err != nil {
		return nil, errors.Wrap(err, "boost_speed")
	}

	dos, err := esx.ParseVersion(v.GetString("dos_version"))
	if err != nil {
		return nil, errors.Wrap(err, "dos_version")
	}

	s := Settings{
		Machine: machine.Settings{
			Backend:        v.GetString("backend"),
			RegisterFile:   v.GetString("register_file"),
			RegisterOffset: v.GetInt64("register_offset"),
			BoostSpeed:     speed,
			DOSVersion:     dos,
		},
		LogLevel: v.GetString("log_level"),
	}

	switch s.Machine.Backend {
	case machine.Emulated, machine.MMap:
	default:
		return nil, errors.Errorf("backend: unknown backend %q", s.Machine.Backend)
	}

	return &s, nil
}
