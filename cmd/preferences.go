package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

var preferencesCmd = &cobra.Command{
	Use:     "preferences",
	Aliases: []string{"prefs"},
	Short:   "Inspect, validate and edit user preferences",
}

var preferencesDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the preferences of a user who changed nothing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeFormatted(cmd.OutOrStdout(), mustGetString(cmd, "format"), preferences.NewResponse(nil))
	},
}

var preferencesValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a preferences update payload",
	Long: `Validate a JSON preferences update payload without contacting a server.
Every rejected field is printed. On success the resolved preferences are
printed as they would look for a user with no other changes.
Use - to read the payload from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreferencesValidate,
}

var preferencesGetCmd = &cobra.Command{
	Use:   "get USER_ID",
	Short: "Print the resolved preferences of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreferencesGet,
}

var preferencesSetCmd = &cobra.Command{
	Use:   "set USER_ID FILE",
	Short: "Apply a preferences update payload to a user",
	Long: `Send a JSON preferences update payload to the server. Only the fields
present in the payload change. Use - to read the payload from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreferencesSet,
}

var preferencesResetCmd = &cobra.Command{
	Use:   "reset USER_ID",
	Short: "Drop every change of a user and return to the defaults",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreferencesReset,
}

func init() {
	rootCmd.AddCommand(preferencesCmd)
	addServerFlag(preferencesCmd)

	preferencesCmd.AddCommand(preferencesDefaultsCmd)
	preferencesCmd.AddCommand(preferencesValidateCmd)
	preferencesCmd.AddCommand(preferencesGetCmd)
	preferencesCmd.AddCommand(preferencesSetCmd)
	preferencesCmd.AddCommand(preferencesResetCmd)

	preferencesDefaultsCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	preferencesGetCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}

// openPayload opens a payload file, or stdin for "-".
func openPayload(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload: %w", err)
	}
	return f, nil
}

// printValidationErrors lists rejected fields, one per line.
func printValidationErrors(w io.Writer, errs preferences.ValidationErrors) {
	fmt.Fprintf(w, "Invalid preferences (%d error(s)):\n", len(errs))
	for _, fe := range errs {
		fmt.Fprintf(w, "  %-32s %-9s %s\n", fe.Field, fe.Constraint, fe.Message)
	}
}

// validatePayload decodes and validates a payload, printing field errors to w.
func validatePayload(w io.Writer, r io.Reader) (*preferences.Update, error) {
	update, err := preferences.Decode(r)
	if err != nil {
		var verrs preferences.ValidationErrors
		if errors.As(err, &verrs) {
			printValidationErrors(w, verrs)
		}
		return nil, err
	}
	return update, nil
}

func runPreferencesValidate(cmd *cobra.Command, args []string) error {
	payload, err := openPayload(cmd, args[0])
	if err != nil {
		return err
	}
	defer payload.Close()

	update, err := validatePayload(cmd.ErrOrStderr(), payload)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Payload is valid")
	return writeJSON(cmd.OutOrStdout(), preferences.NewResponse(update))
}

// parseUserID accepts a UUID in any case and returns its canonical form.
func parseUserID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid user ID %q: %w", s, err)
	}
	return id.String(), nil
}

func runPreferencesGet(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := newAPIClient(cmd, true)
	if err != nil {
		return err
	}

	resp, err := client.GetPreferences(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	return writeFormatted(cmd.OutOrStdout(), mustGetString(cmd, "format"), resp)
}

func runPreferencesSet(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	payload, err := openPayload(cmd, args[1])
	if err != nil {
		return err
	}
	defer payload.Close()

	// Validate locally first so errors are listed without a round trip.
	data, err := io.ReadAll(payload)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	if _, err := validatePayload(cmd.ErrOrStderr(), bytes.NewReader(data)); err != nil {
		return err
	}

	client, err := newAPIClient(cmd, true)
	if err != nil {
		return err
	}

	resp, err := client.UpdatePreferences(context.Background(), userID, json.RawMessage(data))
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), resp)
}

func runPreferencesReset(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := newAPIClient(cmd, true)
	if err != nil {
		return err
	}

	resp, err := client.ResetPreferences(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Preferences of %s reset to defaults\n", userID)
	return writeJSON(cmd.OutOrStdout(), resp)
}
