package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "routing_db",
}

var defaultGeo = Geo{
	BaseURL:     "https://api.openrouteservice.org",
	Profile:     "driving-car",
	Timeout:     10 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultRedis = Redis{
	Addr:       "127.0.0.1:6379",
	GeocodeTTL: 24 * time.Hour,
}

var defaultKafka = Kafka{
	GroupID: "routing-order-events",
	Topic:   "order-status-events",
}

var defaultDelivery = Delivery{
	OperationTimeout: 3 * time.Second,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultGeo returns the default geo provider settings.
func DefaultGeo() Geo {
	return defaultGeo
}

// DefaultRedis returns the default redis settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultKafka returns the default kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultDelivery returns the default delivery settings.
func DefaultDelivery() Delivery {
	return defaultDelivery
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof {
	return defaultPprof
}
