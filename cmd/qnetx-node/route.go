package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/VanDung-dev/QNetX-Engine/api"
	pb "github.com/VanDung-dev/QNetX-Engine/api/proto"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

func newRouteCmd(a *app) *cobra.Command {
	var (
		admin   string
		payload string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "route <src> <dst>",
		Short: "Show the path a packet would take, or relay one through a running node",
		Long: `Without --admin the route is selected from the configured topology and
printed with its candidate paths. With --admin the packet is relayed by the
node whose admin gRPC endpoint is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.close()

			src, dst := qnet.NodeID(args[0]), qnet.NodeID(args[1])
			if admin == "" {
				return printLocalRoute(cmd, a, src, dst)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return relayRemote(ctx, cmd, admin, a.config.Admin.AuthToken, &pb.RelayRequest{
				Src:     args[0],
				Dst:     args[1],
				Payload: []byte(payload),
			})
		},
	}
	cmd.Flags().StringVar(&admin, "admin", "", "admin gRPC address of a running node")
	cmd.Flags().StringVar(&payload, "payload", "", "packet payload for --admin")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "relay timeout")
	return cmd
}

func printLocalRoute(cmd *cobra.Command, a *app, src, dst qnet.NodeID) error {
	router := qnet.NewRouter(a.config.Routing.KPaths)
	for _, e := range a.config.Routing.Edges {
		router.AddEdge(qnet.NodeID(e.From), qnet.NodeID(e.To))
	}

	candidates := router.EnumeratePaths(src, dst, router.KPaths())
	path, err := router.SelectRoute(src, dst)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "candidates: %d\n", len(candidates))
	for i, p := range candidates {
		fmt.Fprintf(out, "  [%d] %s\n", i, p)
	}
	fmt.Fprintf(out, "selected: %s (%d hops)\n", path, path.Hops())
	return nil
}

func relayRemote(ctx context.Context, cmd *cobra.Command, address, token string, req *pb.RelayRequest) error {
	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		api.WithToken(token))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	resp, err := pb.NewAdminClient(conn).Relay(ctx, req)
	if err != nil {
		return err
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
