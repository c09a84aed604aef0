package main

import (
	"Folio/cmd"
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/models"
	"Folio/internal/server"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Folder repository service and maintenance tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "folio.yaml", "Path to the configuration file")

	reconcileCmd.Flags().String("area", "", "Area id of the scope to reconcile")
	reconcileCmd.Flags().String("proceso", "", "Proceso id of the scope to reconcile")
	reconcileCmd.Flags().String("subproceso", "", "Subproceso id of the scope to reconcile")
	reconcileCmd.Flags().Bool("all", false, "Reconcile every scope with duplicate roots")

	sweepCmd.Flags().Int("limit", 0, "Maximum tombstones to process (defaults to janitor.sweep_limit)")

	tokenCmd.Flags().String("user", "", "User id placed in the token subject")
	tokenCmd.Flags().String("role", string(authz.RoleViewer), "Role: viewer, editor, manager or admin")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(serveCmd, reconcileCmd, scanCmd, sweepCmd, tokenCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the janitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfiguration(configPath)
		if err != nil {
			return err
		}
		srv, cleanup, err := InitializeServer(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := srv.JanitorService.Start(); err != nil {
			return err
		}
		defer srv.JanitorService.Stop()

		app := server.NewApp(srv)
		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit
			srv.LogService.Log.Info("shutting down")
			_ = app.Shutdown()
		}()

		srv.LogService.Log.Infof("listening on :%d", cfg.Server.Port)
		return app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge duplicate root folders into the canonical root",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		area, _ := cmd.Flags().GetString("area")
		proceso, _ := cmd.Flags().GetString("proceso")
		subproceso, _ := cmd.Flags().GetString("subproceso")
		scoped := cmd.Flags().Changed("area") || cmd.Flags().Changed("proceso") || cmd.Flags().Changed("subproceso")
		if all == scoped {
			return errors.New("pass either --all or at least one of --area, --proceso, --subproceso")
		}

		toolkit, cleanup, err := loadToolkit()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if all {
			report, err := toolkit.ReconcileService.ReconcileAll(ctx, authz.System())
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		}
		report, err := toolkit.ReconcileService.ReconcileScope(ctx, authz.System(), models.NewScope(area, proceso, subproceso))
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List scopes that have more than one root folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		toolkit, cleanup, err := loadToolkit()
		if err != nil {
			return err
		}
		defer cleanup()

		groups, err := toolkit.ReconcileService.Scan(cmd.Context(), authz.System())
		if err != nil {
			return err
		}
		return printJSON(cmd, groups)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete blobs left behind by removed files",
	RunE: func(cmd *cobra.Command, args []string) error {
		toolkit, cleanup, err := loadToolkit()
		if err != nil {
			return err
		}
		defer cleanup()

		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = toolkit.Configuration.Janitor.SweepLimit
		}
		result, err := toolkit.SweepService.Sweep(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token signed with auth.jwt_secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfiguration(configPath)
		if err != nil {
			return err
		}
		tokens, err := provideTokens(cfg)
		if err != nil {
			return err
		}
		user, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		signed, err := tokens.Issue(authz.Principal{UserID: user, Role: authz.Normalize(role)}, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func loadToolkit() (*cmd.Toolkit, func(), error) {
	cfg, err := config.LoadConfiguration(configPath)
	if err != nil {
		return nil, nil, err
	}
	return InitializeToolkit(cfg)
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
