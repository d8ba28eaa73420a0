package env

import (
	"os"

	"tosipeli/internal/config"
)

const (
	httpAddrEnvName = "HTTP_ADDR"
	defaultHTTPAddr = ":3000"
)

type httpConfig struct {
	address string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	address := os.Getenv(httpAddrEnvName)
	if len(address) == 0 {
		address = defaultHTTPAddr
	}

	return &httpConfig{
		address: address,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}
