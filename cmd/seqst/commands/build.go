package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	suffixtree "github.com/seqeron/go-suffixtree"
	"github.com/seqeron/go-suffixtree/layout"
)

var buildLayoutName string

var buildCmd = &cobra.Command{
	Use:   "build [text file]",
	Short: "Build a tree index file over a raw text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := viper.GetString("index")
		if out == "" {
			return fmt.Errorf("no output file: pass --index")
		}
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		opts := []suffixtree.Option{suffixtree.WithLogger(logger())}
		switch buildLayoutName {
		case "":
			// Chosen from the text size.
		case "compact":
			opts = append(opts, suffixtree.WithLayout(layout.Compact))
		case "large":
			opts = append(opts, suffixtree.WithLayout(layout.Large))
		default:
			return fmt.Errorf("unknown layout %q: want compact or large", buildLayoutName)
		}

		t, err := suffixtree.BuildFile(text, out, opts...)
		if err != nil {
			return err
		}
		defer t.Dispose()

		st := t.Stats()
		fmt.Printf("indexed %d characters: %d nodes, %d leaves, max depth %d, format v%d\n",
			len(text), st.NodeCount, st.LeafCount, st.MaxDepth, st.Version)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show an index file's counters and format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		st := t.Stats()
		fmt.Printf("text length: %d\n", st.LeafCount)
		fmt.Printf("nodes:       %d\n", st.NodeCount)
		fmt.Printf("leaves:      %d\n", st.LeafCount)
		fmt.Printf("max depth:   %d\n", st.MaxDepth)
		fmt.Printf("format:      v%d\n", st.Version)
		fmt.Printf("backend:     %s\n", st.Backend)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildLayoutName, "layout", "", "node format: compact or large (default: by text size)")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(statsCmd)
}
