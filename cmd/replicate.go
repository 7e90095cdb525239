package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zzenonn/zreplica/internal/domain"
)

var copyCmd = &cobra.Command{
	Use:   "copy [source-file] [dest-dir] [count]",
	Short: "Write count byte-identical copies named {base}_copy{i}{ext}",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := parseCount(args[2])
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := replicationService.Replicate(cmd.Context(), domain.ReplicationRequest{
			SourcePath: args[0],
			DestDir:    args[1],
			Count:      count,
			Quiet:      cfg.Quiet,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %d copies of %s in %s (%s, %s)\n",
			result.Files, args[0], args[1], result.Strategy, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:   "template [source-file] [dest-dir] [count]",
	Short: "Write count copies named {base}_{i}{ext}, each with a unique placeholder value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := parseCount(args[2])
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := templateService.Replicate(cmd.Context(), domain.TemplateRequest{
			ReplicationRequest: domain.ReplicationRequest{
				SourcePath: args[0],
				DestDir:    args[1],
				Count:      count,
				Quiet:      cfg.Quiet,
			},
			Placeholder: cfg.Placeholder,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %d templated copies of %s in %s (%d shards, %s)\n",
			result.Files, args[0], args[1], len(result.Shards), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func parseCount(arg string) (int, error) {
	count, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("number of copies must be an integer: %q", arg)
	}
	return count, nil
}

func init() {
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(templateCmd)
}
