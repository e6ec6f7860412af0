package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	Game              Game          `mapstructure:"game" yaml:"game"`
}

// Game holds gameplay tuning knobs shared by all rooms.
type Game struct {
	// GuessAward is added to a player's score on a correct guess.
	GuessAward int `mapstructure:"guess_award" yaml:"guess_award"`
	// WordChoices is how many candidate words the drawer picks from.
	WordChoices int `mapstructure:"word_choices" yaml:"word_choices"`
	// RoundEndDelay is the pause between a round ending and the next word offer.
	RoundEndDelay time.Duration `mapstructure:"round_end_delay" yaml:"round_end_delay"`
	// MatchTimeout upgrades a lone matchmaking waiter to a bot room.
	// Zero disables the timeout.
	MatchTimeout time.Duration `mapstructure:"match_timeout" yaml:"match_timeout"`
	// AllowLateJoin permits joining a room after its game has started.
	AllowLateJoin bool `mapstructure:"allow_late_join" yaml:"allow_late_join"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		Game: Game{
			GuessAward:    100,
			WordChoices:   2,
			RoundEndDelay: 3 * time.Second,
			MatchTimeout:  10 * time.Second,
			AllowLateJoin: false,
		},
	}
}
