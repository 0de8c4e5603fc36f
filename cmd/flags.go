package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-prefs/internal/apiclient"
	"github.com/kozaktomas/photo-prefs/internal/constants"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// This is appropriate for flags defined in init() - errors indicate programming bugs.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// addServerFlag registers the persistent --server flag of client commands.
func addServerFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("server", "", "Server URL (defaults to PHOTO_PREFS_SERVER or "+constants.DefaultServerURL+")")
}

// newAPIClient builds a client for the server named by --server, the
// PHOTO_PREFS_SERVER environment variable, or the default URL, in that order.
// Streaming commands pass timeout=false so the stream is not cut off.
func newAPIClient(cmd *cobra.Command, timeout bool) (*apiclient.Client, error) {
	server := mustGetString(cmd, "server")
	if server == "" {
		server = os.Getenv("PHOTO_PREFS_SERVER")
	}
	if server == "" {
		server = constants.DefaultServerURL
	}

	httpClient := &http.Client{}
	if timeout {
		httpClient.Timeout = constants.DefaultClientTimeout
	}

	client, err := apiclient.New(server, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}
