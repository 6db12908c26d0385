// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattermost/spcd/service"
	"github.com/mattermost/spcd/service/auth"
	"github.com/mattermost/spcd/service/random"
)

func main() {
	var configPath string
	var describePath string
	var quantiles string
	var exclude string
	var histogram bool
	var strict bool
	var genKey bool
	flag.StringVar(&configPath, "config", "config/config.toml", "Path to the configuration file for the spcd service.")
	flag.StringVar(&describePath, "describe", "", "Describe the samples in the given file (- for stdin) and exit.")
	flag.StringVar(&quantiles, "quantiles", "", "Comma separated quantiles to report in describe mode.")
	flag.StringVar(&exclude, "exclude", "", "Comma separated sentinel values to drop in describe mode.")
	flag.BoolVar(&histogram, "histogram", false, "Also print a histogram in describe mode.")
	flag.BoolVar(&strict, "strict", false, "Report NaN instead of defaults for empty sets in describe mode.")
	flag.BoolVar(&genKey, "genkey", false, "Print a new random secret key and exit.")
	flag.Parse()

	if genKey {
		key, err := random.NewSecureString(auth.MinKeyLen)
		if err != nil {
			log.Fatalf("spcd: failed to generate key: %s", err.Error())
		}
		fmt.Println(key)
		return
	}

	if describePath != "" {
		opts, err := newDescribeOptions(quantiles, exclude, histogram, strict)
		if err != nil {
			log.Fatalf("spcd: invalid describe options: %s", err.Error())
		}

		in := os.Stdin
		if describePath != "-" {
			in, err = os.Open(describePath)
			if err != nil {
				log.Fatalf("spcd: failed to open samples: %s", err.Error())
			}
			defer in.Close()
		}

		if err := runDescribe(in, os.Stdout, opts); err != nil {
			log.Fatalf("spcd: failed to describe samples: %s", err.Error())
		}
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("spcd: failed to load config: %s", err.Error())
	}

	if err := cfg.IsValid(); err != nil {
		log.Fatalf("spcd: failed to validate config: %s", err.Error())
	}

	service, err := service.New(cfg)
	if err != nil {
		log.Fatalf("spcd: failed to create service: %s", err.Error())
	}

	if err := service.Start(); err != nil {
		log.Fatalf("spcd: failed to start service: %s", err.Error())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := service.Stop(); err != nil {
		log.Fatalf("spcd: failed to stop service: %s", err.Error())
	}
}
