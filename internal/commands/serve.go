package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cashplan-dev/cashplan/internal/config"
	"github.com/cashplan-dev/cashplan/internal/identity"
	"github.com/cashplan-dev/cashplan/internal/server"
)

const tokenTTL = 24 * time.Hour

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			if a.cfg.Server.JWTSecret == "" {
				return fmt.Errorf("server.jwtSecret must be set in %s", config.FileName)
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			a.log.SetFormatter(&logrus.JSONFormatter{})
			issuer := identity.NewTokenIssuer(a.cfg.Server.JWTSecret, tokenTTL)
			srv := server.New(a.kv, issuer, a.cfg.Windows, a.log)
			a.log.WithField("addr", addr).Info("listening")
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
