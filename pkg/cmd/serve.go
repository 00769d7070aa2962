package cmd

import (
	"context"
	"fmt"
	"net"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/chartdesk/pkg/cmd/cmdutil"
	"github.com/c9s/chartdesk/pkg/server"
	"github.com/c9s/chartdesk/pkg/session"
)

const janitorSchedule = "@every 5m"

func init() {
	ServeCmd.Flags().String("bind", "", "the address the api server binds to, overrides server.bind of the config")
	RootCmd.AddCommand(ServeCmd)
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the chart api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		bind, err := cmd.Flags().GetString("bind")
		if err != nil {
			return err
		}

		serverConfig := userConfig.Server
		if bind != "" {
			serverConfig.Bind = bind
		}

		options, err := userConfig.SessionOptions()
		if err != nil {
			return err
		}

		ttl, err := serverConfig.SessionTTLDuration()
		if err != nil {
			return err
		}

		registry := session.NewRegistry(options)
		if ttl > 0 {
			janitor, err := registry.StartJanitor(janitorSchedule, ttl)
			if err != nil {
				return err
			}
			defer janitor.Stop()
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := server.New(serverConfig, registry)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(ctx)
		})

		g.Go(func() error {
			server.PingUntil(ctx, baseURL(serverConfig.Bind), func() {
				log.Infof("api server is ready")
			})
			return nil
		})

		g.Go(func() error {
			cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM)
			cancel()
			return nil
		})

		return g.Wait()
	},
}

// baseURL converts the bind address into a url the api can be reached at locally
func baseURL(bind string) string {
	host, port, err := net.SplitHostPort(bind)
	if err != nil {
		host, port = "", "8080"
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	return fmt.Sprintf("http://%s", net.JoinHostPort(host, port))
}
