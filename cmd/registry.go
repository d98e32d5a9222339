package cmd

import (
	"github.com/spf13/cobra"

	"stoneerp.GO/core/registry"
)

// Register queues a command from an extension package's init. The command is
// attached to the root by Apply; registering afterwards panics.
func Register(c *cobra.Command) {
	if err := registry.Append(registry.GlobalRegistry, registry.KeyRegistryCmd, c); err != nil {
		panic("cmd: Register after Apply: " + err.Error())
	}
}

// Apply attaches the queued extension commands and closes the registry.
func Apply() {
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
	for _, c := range registry.List[*cobra.Command](registry.GlobalRegistry, registry.KeyRegistryCmd) {
		rootCmd.AddCommand(c)
	}
}
