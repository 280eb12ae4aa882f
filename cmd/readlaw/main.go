package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nttrung2406/readlaw-cli/internal/api"
	"github.com/nttrung2406/readlaw-cli/internal/auth"
	"github.com/nttrung2406/readlaw-cli/internal/config"
)

// runtime bundles the shared collaborators every command needs: the
// loaded config, the session store and the API gateway built on it.
type runtime struct {
	cfg    *config.Config
	store  *auth.Store
	client *api.Client
}

func newRuntime() (*runtime, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}

	store := auth.NewStore(manager.Dir())
	if err := store.Load(); err != nil {
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		store:  store,
		client: api.NewClient(cfg.BaseURL, store),
	}, nil
}

// requireLogin guards commands that need an authenticated session.
func (rt *runtime) requireLogin() error {
	if !rt.store.LoggedIn() {
		return errors.New("not logged in (run 'readlaw login' first)")
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	rt, err := newRuntime()
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	root := &cobra.Command{
		Use:           "readlaw",
		Short:         "Terminal client for the ReadLaw legal document summarizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		loginCmd(rt),
		signupCmd(rt),
		logoutCmd(rt),
		listCmd(rt),
		uploadCmd(rt),
		renameCmd(rt),
		deleteCmd(rt),
		openCmd(rt),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
