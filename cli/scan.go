package cli

import (
	"fmt"
	"time"

	"cyberx/scanner"

	"github.com/spf13/cobra"
)

type scanOptions struct {
	ports       string
	tcp         bool
	udp         bool
	timeout     time.Duration
	concurrency int
	retries     int
	rate        int
	jsonOutput  bool
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan <target>",
		Short: "Scan one host and print the port states",
		Example: "  cyberx scan 127.0.0.1 --ports 22,80,443\n" +
			"  cyberx scan scanme.nmap.org --ports 53,123 --tcp=false --udp --json",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ports, "ports", "p", "1-1024", "ports and ranges to probe, e.g. 22,80,8000-8010")
	flags.BoolVar(&opts.tcp, "tcp", true, "run TCP connect probes")
	flags.BoolVar(&opts.udp, "udp", false, "run UDP probes")
	flags.DurationVar(&opts.timeout, "timeout", scanner.DefaultTimeout, "per-probe timeout (minimum 200ms)")
	flags.IntVarP(&opts.concurrency, "concurrency", "c", scanner.DefaultConcurrency, "probes in flight at once")
	flags.IntVar(&opts.retries, "retries", scanner.DefaultRetries, "UDP attempts per port")
	flags.IntVar(&opts.rate, "rate", 0, "maximum probes started per second (0 for no limit)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output results in JSON format")
	return cmd
}

func runScan(cmd *cobra.Command, target string, opts *scanOptions) error {
	ports := scanner.ParsePorts(opts.ports)
	if len(ports) == 0 {
		return fmt.Errorf("no valid ports in %q", opts.ports)
	}
	if !opts.tcp && !opts.udp {
		return fmt.Errorf("nothing to scan: enable --tcp or --udp")
	}

	s := scanner.New(scanner.WithRateLimit(opts.rate))
	results, err := s.Scan(cmd.Context(), scanner.Request{
		Target:      target,
		Ports:       ports,
		TCP:         opts.tcp,
		UDP:         opts.udp,
		Timeout:     opts.timeout,
		Concurrency: opts.concurrency,
		Retries:     opts.retries,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return outputJSON(out, results)
	}
	outputPlainText(out, results)
	return nil
}
