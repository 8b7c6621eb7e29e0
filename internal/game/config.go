package game

import "github.com/jfmyers9/lyricmatch/internal/session"

// Config is the pre-game configuration.
type Config struct {
	Difficulty session.Difficulty
	Genres     GenreSet // empty means no filter
}

// DefaultConfig returns medium difficulty with no genre filter
func DefaultConfig() Config {
	return Config{Difficulty: session.Medium}
}

// Settings converts the config into start request settings.
func (c Config) Settings() session.Settings {
	return session.Settings{
		Difficulty: c.Difficulty,
		Genres:     c.Genres.IDs(),
	}
}

// Panel is the configuration panel model: the config plus the genre catalog
// it is chosen from. It holds no network state and only changes while the
// machine is Idle.
type Panel struct {
	Config  Config
	Catalog Catalog
}

// ToggleGenre flips membership of id in the genre filter.
func (p *Panel) ToggleGenre(id string) bool {
	return p.Config.Genres.Toggle(id)
}

// SetDifficulty validates and sets the difficulty.
func (p *Panel) SetDifficulty(d session.Difficulty) error {
	parsed, err := session.ParseDifficulty(string(d))
	if err != nil {
		return err
	}
	p.Config.Difficulty = parsed
	return nil
}

func (p Panel) clone() Panel {
	return Panel{
		Config: Config{
			Difficulty: p.Config.Difficulty,
			Genres:     p.Config.Genres.Clone(),
		},
		Catalog: append(Catalog(nil), p.Catalog...),
	}
}
