package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/playlake/playlake/pkg/schema"
)

func getTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Lists the derived tables and their partitioning",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range schema.Tables {
				part := "unpartitioned"
				if len(t.PartitionBy) > 0 {
					part = "partitioned by " +
						strings.Join(t.PartitionBy, ", ")
				}
				fmt.Printf("  %-10s %s\n", t.Name, part)
			}
			return nil
		},
	}
	return cmd
}
