package config

import "github.com/datastax/cassandra-datatables/datatables"

// EngineOptions returns the engine options matching the settings
func EngineOptions(cfg Config) []datatables.Option {
	return []datatables.Option{
		datatables.WithCaseInsensitive(cfg.CaseInsensitive()),
		datatables.WithDebug(cfg.Debug()),
		datatables.WithDefaultPageLength(cfg.DefaultPageLength()),
	}
}
