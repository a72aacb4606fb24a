// Package cli implements the activitylog operator commands.
package cli

import (
	"github.com/goliatone/go-activitylog/config"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	driver   string
	server   string
	debug    bool
	actor    string
	role     string
	tenant   string
	unscoped bool
	json     bool
}

func (f *rootFlags) apply(cfg *config.BaseConfig) {
	if f.driver != "" {
		cfg.Persistence.Driver = f.driver
	}
	if f.server != "" {
		cfg.Persistence.Server = f.server
	}
	if f.debug {
		cfg.Persistence.Debug = true
	}
	if f.unscoped {
		cfg.ActivityLog.ScopedToTenant = false
	}
}

// NewRootCmd builds the activitylog command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "activitylog",
		Short: "Inspect activity log entries recorded by the audit logger",
		Long: `activitylog reads the activity_log table written by the audit logger.
It lists and shows entries with the same taxonomy, badges and scoping
rules the admin viewer applies.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.driver, "db-driver", "", "database driver (sqlite or postgres)")
	pf.StringVar(&flags.server, "db-server", "", "database DSN")
	pf.BoolVar(&flags.debug, "debug", false, "verbose logging")
	pf.StringVar(&flags.actor, "actor", "", "reader id (uuid)")
	pf.StringVar(&flags.role, "role", types.ActorRoleSystemAdmin, "reader role")
	pf.StringVar(&flags.tenant, "tenant", "", "tenant id (uuid)")
	pf.BoolVar(&flags.unscoped, "unscoped", false, "ignore tenant scoping")
	pf.BoolVar(&flags.json, "json", false, "print JSON")

	rootCmd.AddCommand(migrateCmd(flags))
	rootCmd.AddCommand(listCmd(flags))
	rootCmd.AddCommand(showCmd(flags))
	rootCmd.AddCommand(optionsCmd(flags))
	rootCmd.AddCommand(resourceCmd(flags))
	rootCmd.AddCommand(configCmd(flags))
	return rootCmd
}
