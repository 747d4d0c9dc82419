package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the dataset vocabularies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		records, err := st.ListRecords(ctx)
		if err != nil {
			return err
		}
		cat := catalog.New(records)

		fmt.Printf("records:      %d\n", len(cat.Records()))
		fmt.Printf("universities: %s\n", strings.Join(cat.Universities(), ", "))
		fmt.Printf("campuses:     %s\n", strings.Join(cat.Campuses(), ", "))
		fmt.Printf("departments:  %s\n", strings.Join(cat.Departments(), ", "))
		fmt.Printf("programs:     %s\n", strings.Join(cat.Programs(), ", "))
		fmt.Printf("years:        %s\n", joinInts(cat.Years()))
		return nil
	},
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}
