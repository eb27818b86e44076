package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

func newConnectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <address>",
		Short: "Open an entangled channel with a remote node",
		Long: `Performs the initiator side of a handshake against the handshake
listener at address, using the first two configured mesh dimensions, and
prints the channel id assigned by the remote node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.close()

			mesh := qnetx.NewMesh(a.config.ToMesh(), qnetx.WithLogger(a.logger))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			id, err := mesh.Connect(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.Key())
			return nil
		},
	}
}
