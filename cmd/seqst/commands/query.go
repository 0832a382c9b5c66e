package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var containsCmd = &cobra.Command{
	Use:   "contains [pattern]",
	Short: "Test whether the indexed text contains a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		ok, err := t.ContainsString(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count [pattern]",
	Short: "Count occurrences of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		n, err := t.CountOccurrencesString(args[0])
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var occurrencesCmd = &cobra.Command{
	Use:   "occurrences [pattern]",
	Short: "List every occurrence position of a pattern, ascending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		positions, err := t.FindAllOccurrencesString(args[0])
		if err != nil {
			return err
		}
		for _, p := range positions {
			fmt.Println(p)
		}
		return nil
	},
}

var suffixesCmd = &cobra.Command{
	Use:   "suffixes",
	Short: "List every suffix of the indexed text in tree order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		it, err := t.NewSuffixIterator()
		if err != nil {
			return err
		}
		for {
			s, ok := it.Next()
			if !ok {
				break
			}
			fmt.Printf("%d\t%s\n", s.Pos, s.Text)
		}
		return it.Err()
	},
}

func init() {
	rootCmd.AddCommand(containsCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(occurrencesCmd)
	rootCmd.AddCommand(suffixesCmd)
}
