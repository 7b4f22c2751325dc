// Package config provides configuration management for the license
// manager agent.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all agent settings,
// divided into subsections:
//   - Agent: cluster name, tick interval, HTTP port, reservation duration
//   - Backend: license manager API endpoint and token
//   - Slurm: scontrol/squeue paths and the reservation name
//   - License: vendor CLI tool paths
//   - Log: logging level and format
//   - Database: optional tick history store
//   - Storage: optional raw output archive
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Agent.ClusterName)
package config
