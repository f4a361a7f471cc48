package config

import (
	"time"

	"github.com/datastax/cassandra-datatables/log"
)

// Config carries the settings shared by the endpoints and the engines they build
type Config interface {
	CaseInsensitive() bool
	Debug() bool
	DefaultPageLength() int
	RefreshInterval() time.Duration
	Naming() NamingConventionFn
	Logger() log.Logger
}
