package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brightpath-ai/brightpath/pkg/graph"
)

func newGraphCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Manage the concept knowledge graph",
	}

	openGraph := func() (*graph.SQLiteGraph, error) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}
		return graph.New(cfg.Graph.DBPath)
	}

	addConceptCmd := &cobra.Command{
		Use:   "add-concept <name> <definition>",
		Short: "Add or update a concept definition",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGraph()
			if err != nil {
				return err
			}
			defer func() { _ = g.Close() }()

			definition := strings.Join(args[1:], " ")
			if err := g.UpsertConcept(context.Background(), args[0], definition); err != nil {
				return err
			}
			fmt.Printf("Concept %q saved.\n", args[0])
			return nil
		},
	}

	addPrereqCmd := &cobra.Command{
		Use:   "add-prereq <concept> <prerequisite>",
		Short: "Record that a concept depends on a prerequisite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGraph()
			if err != nil {
				return err
			}
			defer func() { _ = g.Close() }()

			if err := g.AddPrerequisite(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%q now requires %q.\n", args[0], args[1])
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <concept>",
		Short: "Show a concept definition and its prerequisites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGraph()
			if err != nil {
				return err
			}
			defer func() { _ = g.Close() }()

			ctx := context.Background()
			def, err := g.Definition(ctx, args[0])
			if err != nil {
				return err
			}
			prereqs, err := g.Prerequisites(ctx, args[0])
			if err != nil {
				return err
			}

			if def == "" && len(prereqs) == 0 {
				fmt.Printf("No graph entry for %q.\n", args[0])
				return nil
			}
			if def != "" {
				fmt.Printf("%s: %s\n", args[0], def)
			}
			for _, p := range prereqs {
				fmt.Printf("  requires: %s\n", p)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.AddCommand(addConceptCmd, addPrereqCmd, showCmd)
	return cmd
}
