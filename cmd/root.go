package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "campsited",
		Short: "Campsite reservation service: availability windows and no-overlap bookings",
	}

	root.PersistentFlags().String("config", "", "path to YAML config file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServerCmd())
	root.AddCommand(newAvailabilityCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newCancelCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
