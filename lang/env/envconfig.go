package env

import caarlos0env "github.com/caarlos0/env/v6"

// Settings is the process-wide configuration spec §6 names, parsed from
// os.Environ() once at startup instead of scattering os.Getenv calls through
// the evaluator and REPL.
type Settings struct {
	IFS         string `env:"IFS"`
	Strict      bool   `env:"STRICT"`
	Profile     string `env:"LUME_PROFILE"`
	PrintDirect bool   `env:"LUME_PRINT_DIRECT" envDefault:"true"`
}

// LoadSettings parses Settings from the current process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := caarlos0env.Parse(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
