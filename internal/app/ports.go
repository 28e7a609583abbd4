package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/output"
	"github.com/constellos/agenthooks/internal/ports"
)

var (
	portsFlagService string
	portsFlagSession string
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Allocate and release development-service ports",
}

var portsAllocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Lease the next free port in the configured range",
	RunE:  runPortsAllocate,
}

var portsReleaseCmd = &cobra.Command{
	Use:   "release <port>|--session <id>",
	Short: "Release a leased port, or all of a session's ports",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPortsRelease,
}

var portsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current port leases",
	RunE:  runPortsList,
}

func init() {
	portsAllocateCmd.Flags().StringVar(&portsFlagService, "service", "dev", "Service name to record on the lease")
	portsAllocateCmd.Flags().StringVar(&portsFlagSession, "session", "", "Session id holding the lease")
	portsReleaseCmd.Flags().StringVar(&portsFlagSession, "session", "", "Release every port this session holds")
	portsCmd.AddCommand(portsAllocateCmd, portsReleaseCmd, portsListCmd)
	rootCmd.AddCommand(portsCmd)
}

func runPortsAllocate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	alloc := ports.NewAllocator(db, cfg.PortRange.Min, cfg.PortRange.Max)
	lease, err := alloc.Allocate(portsFlagService, portsFlagSession)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(lease)
	}
	fmt.Println(lease.Port)
	return nil
}

func runPortsRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	alloc := ports.NewAllocator(db, cfg.PortRange.Min, cfg.PortRange.Max)

	if portsFlagSession != "" {
		n, err := alloc.ReleaseSession(portsFlagSession)
		if err != nil {
			return err
		}
		fmt.Printf("released %d lease(s)\n", n)
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("a port number or --session is required")
	}
	var port int
	if _, err := fmt.Sscanf(args[0], "%d", &port); err != nil {
		return fmt.Errorf("invalid port %q", args[0])
	}
	return alloc.Release(port)
}

func runPortsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	alloc := ports.NewAllocator(db, cfg.PortRange.Min, cfg.PortRange.Max)
	leases, err := alloc.List()
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(leases)
	}
	if len(leases) == 0 {
		fmt.Println("No active leases.")
		return nil
	}

	tbl := output.NewTable("PORT", "SERVICE", "SESSION", "LEASED")
	for _, l := range leases {
		tbl.AddRow(fmt.Sprint(l.Port), l.Service, shorten(l.SessionID), l.LeasedAt.Format(time.RFC3339))
	}
	tbl.Print()
	return nil
}
