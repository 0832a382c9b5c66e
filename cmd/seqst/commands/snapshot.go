package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	suffixtree "github.com/seqeron/go-suffixtree"
)

var exportCmd = &cobra.Command{
	Use:   "export [snapshot file]",
	Short: "Write the index as a portable snapshot",
	Long: `The snapshot is backend and format independent: importing it rebuilds
an identical tree anywhere, and a sha256 of the text guards the content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		return t.SaveToFile(args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import [snapshot file]",
	Short: "Rebuild an index file from a portable snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := viper.GetString("index")
		if out == "" {
			return fmt.Errorf("no output file: pass --index")
		}
		src, err := suffixtree.LoadFromFile(args[0], suffixtree.WithLogger(logger()))
		if err != nil {
			return err
		}
		defer src.Dispose()

		t, err := suffixtree.BuildFile(src.Text().Bytes(), out, suffixtree.WithLogger(logger()))
		if err != nil {
			return err
		}
		defer t.Dispose()

		st := t.Stats()
		fmt.Printf("rebuilt %d characters into %s (format v%d)\n", st.LeafCount, out, st.Version)
		return nil
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the index's logical content hash",
	Long: `The logical hash covers text content and tree shape only, so equal
texts hash equally across node formats and storage backends.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		h, err := t.CalculateLogicalHash()
		if err != nil {
			return err
		}
		fmt.Println(h)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(hashCmd)
}
