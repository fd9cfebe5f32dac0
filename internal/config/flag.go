package config

import (
	"flag"
	"time"
)

const (
	defaultDBDNS          = ""
	defaultAccessTokenTTL = 12 * time.Hour
)

type Flags struct {
	address string

	dbDNS     string
	jwtSecret string
	amqpURL   string
	logLevel  string
	timezone  string
}

func (flags *Flags) Init() {
	flag.StringVar(&flags.address, "a", ":8080", "Address and port to run server")

	flag.StringVar(&flags.dbDNS, "d", defaultDBDNS, "db dns")
	flag.StringVar(&flags.jwtSecret, "j", "", "secret used to sign access tokens")
	flag.StringVar(&flags.amqpURL, "m", "", "amqp url for the action log exchange")
	flag.StringVar(&flags.logLevel, "l", "info", "log level")
	flag.StringVar(&flags.timezone, "tz", "UTC", "timezone of the dispatch calendar day")

	flag.Parse()
}
