// chatgate - a terminal chat application gated by local account login.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatgate/internal/cloud"
	"github.com/jeranaias/chatgate/internal/config"
	"github.com/jeranaias/chatgate/internal/flow"
	"github.com/jeranaias/chatgate/internal/resolver"
	"github.com/jeranaias/chatgate/internal/store"
	"github.com/jeranaias/chatgate/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.InitSchema(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The remote responder is optional: without a usable key every reply
	// comes from the canned table.
	var responder resolver.Responder
	client := cloud.NewClient(cfg.Cloud.APIKey).
		WithBaseURL(cfg.Cloud.BaseURL).
		WithModel(cfg.Cloud.Model)
	if client.IsConfigured() {
		responder = client
	}

	app := ui.NewApp(flow.NewController(st), resolver.New(responder))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running chatgate: %v\n", err)
		os.Exit(1)
	}
}
