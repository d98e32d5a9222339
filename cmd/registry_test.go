package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"stoneerp.GO/core/registry"
)

func TestRegisterApply(t *testing.T) {
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)

	out := &bytes.Buffer{}
	Register(&cobra.Command{
		Use: "masterdata:test",
		Run: func(c *cobra.Command, args []string) {
			c.OutOrStdout().Write([]byte("synced " + args[0]))
		},
	})
	Apply()

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"masterdata:test", "colors"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "synced colors" {
		t.Errorf("output = %q, want %q", out.String(), "synced colors")
	}

	for _, name := range []string{"import:run", "masterdata:sync", "products:import", "pricing:quote", "search:reindex"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %s not attached", name)
		}
	}
}
