package main

import (
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/node"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a node until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.close()

			svc, err := node.New(a.config, a.logger)
			if err != nil {
				return err
			}
			if err := svc.Start(); err != nil {
				return err
			}

			a.logger.Info("node running",
				zap.String("handshake", addrString(svc.HandshakeAddr())),
				zap.String("http", addrString(svc.HTTPAddr())),
				zap.String("grpc", addrString(svc.GRPCAddr())))

			<-cmd.Context().Done()

			a.logger.Info("shutting down")
			svc.Stop()
			return nil
		},
	}
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return "disabled"
	}
	return addr.String()
}
