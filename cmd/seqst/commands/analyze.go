package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var repeatCmd = &cobra.Command{
	Use:   "repeat",
	Short: "Print the longest repeated substring of the indexed text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		s, err := t.LongestRepeatedSubstring()
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	},
}

var commonAll bool

var commonCmd = &cobra.Command{
	Use:   "common [other file]",
	Short: "Longest common substring of the indexed text and another file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		other, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if commonAll {
			matches, err := t.FindAllLongestCommonSubstrings(other)
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Printf("%d\t%d\t%d\n", m.PosInText, m.PosInOther, m.Length)
			}
			return nil
		}
		info, err := t.LongestCommonSubstringInfo(other)
		if err != nil {
			return err
		}
		if info.Length == 0 {
			return nil
		}
		fmt.Printf("%s\t(text %d, other %d, length %d)\n",
			other[info.PosInOther:info.PosInOther+info.Length],
			info.PosInText, info.PosInOther, info.Length)
		return nil
	},
}

var anchorsMinLength int

var anchorsCmd = &cobra.Command{
	Use:   "anchors [query file]",
	Short: "Maximal exact matches between the indexed text and a query file",
	Long: `Streams the query against the index and prints one line per maximal
exact match: text position, query position, length. These are the alignment
anchors genome comparison pipelines seed from.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		query, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		anchors, err := t.FindExactMatchAnchors(query, anchorsMinLength)
		if err != nil {
			return err
		}
		for _, a := range anchors {
			fmt.Printf("%d\t%d\t%d\n", a.PosInText, a.PosInQuery, a.Length)
		}
		return nil
	},
}

func init() {
	commonCmd.Flags().BoolVar(&commonAll, "all", false, "print every maximal-length match, not just the first")
	anchorsCmd.Flags().IntVarP(&anchorsMinLength, "min-length", "l", 20, "minimum anchor length to report")
	rootCmd.AddCommand(repeatCmd)
	rootCmd.AddCommand(commonCmd)
	rootCmd.AddCommand(anchorsCmd)
}
