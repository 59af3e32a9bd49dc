package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [session-id]",
		Short: "Remove a scheduled session",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx := context.Background()
			s, err := a.store.GetSession(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteSession(ctx, s.ID); err != nil {
				return fmt.Errorf("deleting session: %w", err)
			}

			fmt.Printf("Removed session %s\n", shortID(s.ID))
			return nil
		},
	}
}
