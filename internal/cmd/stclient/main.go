// Command stclient performs a TLS handshake with a server using the
// securetransport package and prints the first line of the HTTP response.
package main

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/ooni/securetransport/internal/runtimex"
	"github.com/spf13/cobra"
)

func main() {
	log.SetHandler(cli.Default)
	err := newRootCommand().Execute()
	runtimex.PanicOnError(err, "root.Execute")
}

func newRootCommand() *cobra.Command {
	c := &client{}
	var verbose bool
	cmd := &cobra.Command{
		Use:   "stclient HOST:PORT",
		Short: "Performs a TLS handshake and an HTTP/1.0 request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			c.endpoint = args[0]
			c.logger = log.Log
			c.output = cmd.OutOrStdout()
			return c.run()
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVar(&c.caFile, "ca-file", "", "PEM file with the trust anchors to evaluate the server with")
	flags.StringVar(&c.sni, "sni", "", "server name to use (default: the host in HOST:PORT)")
	flags.DurationVar(&c.timeout, "timeout", defaultTimeout, "timeout for the whole operation")
	flags.BoolVarP(&verbose, "verbose", "v", false, "emit debug messages")
	return cmd
}
