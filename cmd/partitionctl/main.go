package main

import (
	"fmt"
	"log"
	"os"

	"github.com/TomasB/geolookup/internal/partition"
	"github.com/spf13/cobra"
)

// main wires the partition maintenance procedures into a small CLI.
func main() {
	var dsn string

	rootCmd := &cobra.Command{
		Use:   "partitionctl",
		Short: "Maintain time-based table partitions",
		Long:  `Invokes the stored partition maintenance procedures: creating partitions for upcoming periods, dropping expired ones, and listing the current set.`,
	}
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (defaults to DATABASE_URL)")

	open := func() *partition.Maintainer {
		if dsn == "" {
			log.Fatal("a connection string is required: set --dsn or DATABASE_URL")
		}
		m, err := partition.Open(dsn)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		return m
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create partitions for upcoming periods",
		Run: func(cmd *cobra.Command, _ []string) {
			m := open()
			defer m.Close()
			if err := m.CreateUpcoming(cmd.Context()); err != nil {
				log.Fatalf("Error creating partitions: %v", err)
			}
			fmt.Println("upcoming partitions created")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "drop",
		Short: "Drop partitions past the retention window",
		Run: func(cmd *cobra.Command, _ []string) {
			m := open()
			defer m.Close()
			if err := m.DropExpired(cmd.Context()); err != nil {
				log.Fatalf("Error dropping partitions: %v", err)
			}
			fmt.Println("expired partitions dropped")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "list <parent-table>",
		Short: "List child partitions of a table",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := open()
			defer m.Close()
			partitions, err := m.List(cmd.Context(), args[0])
			if err != nil {
				log.Fatalf("Error listing partitions: %v", err)
			}
			for _, p := range partitions {
				fmt.Printf("%s\t%s\n", p.Name, p.Size)
			}
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
