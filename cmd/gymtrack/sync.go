package main

import (
	"github.com/spf13/cobra"

	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
	"github.com/2beens/gymtrack/internal/gymtrack/local"
	"github.com/2beens/gymtrack/internal/gymtrack/storage"
)

func newSyncCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Move data between this device and the server",
		Long: `Sync copies data between the local SQLite database and the gymtrack server.

  upload     send every local routine and workout to the server
             (the server gives them new ids, uploading twice duplicates them)
  download   replace all local data with the server copy

Both need a session, see 'gymtrack login'.`,
	}

	uploadCmd := &cobra.Command{
		Use:         "upload",
		Short:       "Upload local data to the server",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnStorage: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, client, err := a.syncEnds()
			if err != nil {
				return err
			}
			result, err := storage.MigrateToCloud(cmd.Context(), store, client)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), result)
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Uploaded %d routines and %d workouts\n", result.RoutinesCount, result.WorkoutsCount)
			return nil
		},
	}

	downloadCmd := &cobra.Command{
		Use:         "download",
		Short:       "Replace local data with the server copy",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnStorage: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, client, err := a.syncEnds()
			if err != nil {
				return err
			}
			bundle, err := storage.MigrateToLocal(cmd.Context(), client, store)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]int{
					"routinesCount": len(bundle.Routines),
					"workoutsCount": len(bundle.Workouts),
				})
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Downloaded %d routines and %d workouts\n", len(bundle.Routines), len(bundle.Workouts))
			return nil
		},
	}

	cmd.AddCommand(uploadCmd, downloadCmd)
	return cmd
}

// syncEnds opens the local store and a signed in API client, whatever the storage mode.
func (a *app) syncEnds() (*local.Store, *cloud.Client, error) {
	client, err := a.client()
	if err != nil {
		return nil, nil, err
	}
	if a.config.Token == "" {
		return nil, nil, storage.ErrNotSignedIn
	}
	if err := a.open(storage.ModeLocal); err != nil {
		return nil, nil, err
	}
	return a.handle.Store, client, nil
}
