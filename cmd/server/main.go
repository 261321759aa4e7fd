// Command server runs the journal HTTP and agent APIs.
//
// Two helper subcommands produce configuration values:
//
//	server hash-agent-key <key>    prints the bcrypt hash for agent_key_hash
//	server issue-token <userId>    prints a bearer token signed with the configured secret
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server"
	"github.com/dmitrijs2005/echojournal/internal/server/auth"
	"github.com/dmitrijs2005/echojournal/internal/server/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "hash-agent-key":
			if len(args) != 2 {
				return fmt.Errorf("usage: hash-agent-key <key>")
			}
			hash, err := auth.HashAgentKey(args[1])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		case "issue-token":
			if len(args) < 2 {
				return fmt.Errorf("usage: issue-token <userId> [flags]")
			}
			cfg, err := config.Load(args[2:])
			if err != nil {
				return err
			}
			if cfg.AuthSecret == "" {
				return fmt.Errorf("no auth secret configured")
			}
			token, err := auth.GenerateToken(args[1], []byte(cfg.AuthSecret), cfg.TokenValidity)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		}
	}

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
