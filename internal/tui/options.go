package tui

import "time"

type CardFieldConfig struct {
	ShowLabels   bool
	ShowDueDates bool
	ShowStatus   bool
}

type Option func(*Model)

func DefaultCardFieldConfig() CardFieldConfig {
	return CardFieldConfig{
		ShowLabels:   true,
		ShowDueDates: true,
		ShowStatus:   true,
	}
}

func WithCardFieldConfig(cfg CardFieldConfig) Option {
	return func(m *Model) {
		m.cardFields = cfg
	}
}

func WithRefreshInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.refreshEvery = d
		}
	}
}
