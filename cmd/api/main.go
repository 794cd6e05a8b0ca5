package main

import (
	"context"
	"fmt"
	"log"

	"accounts-api/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	admins, viewers, err := cfg.LoadCredentialLists()
	if err != nil {
		log.Fatalf("failed to load credentials: %v", err)
	}
	credentials, err := core.NewCredentialStore(admins, viewers)
	if err != nil {
		log.Fatalf("refusing to start: %v", err)
	}

	store, closeStore, err := buildAccountStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s account store: %v", cfg.AccountStore, err)
	}
	defer closeStore()

	auth := core.NewAuthenticator(credentials)
	policy := core.NewPolicyEngine(core.DefaultAccessRules())

	router := core.NewRouter(cfg, auth, policy, store)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s (store=%s)", addr, cfg.AccountStore)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// buildAccountStore selects the configured persistence backend.
func buildAccountStore(ctx context.Context, cfg core.Config) (core.AccountStore, func(), error) {
	switch cfg.AccountStore {
	case "postgres":
		db, err := core.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return core.NewPgAccountStore(db), db.Close, nil
	case "redis":
		client, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return core.NewRedisAccountStore(client), func() { _ = client.Close() }, nil
	case "memory":
		return core.NewMemoryAccountStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown account store backend %q", cfg.AccountStore)
	}
}
