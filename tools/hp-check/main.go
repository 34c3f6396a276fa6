package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/den-games/denbot/internal/logging"
	"github.com/den-games/denbot/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Url string `envconfig:"DEN_HP_URL" default:"http://127.0.0.1:1234/health"`
}

func main() {
	flag.Parse()
	ctx, cancel := shutdown.New()
	logger := logging.FromContext(ctx)
	defer cancel()
	config := Config{}
	if err := envconfig.Process("", &config); err != nil {
		logger.Fatalf("processing the config: %v", err)
	}

	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			DisableCompression:    true,
			IdleConnTimeout:       5 * time.Minute,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}

	resp, err := client.Get(config.Url)
	if err != nil {
		logger.Fatalf("client get: %v", err)
	}
	defer resp.Body.Close()

	_, _ = fmt.Fprintf(os.Stdout, "%d\n", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
