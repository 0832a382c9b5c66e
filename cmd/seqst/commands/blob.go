package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	suffixtree "github.com/seqeron/go-suffixtree"
	"github.com/seqeron/go-suffixtree/blobsnap"
)

// blobStore dials the snapshot container from config. The connection string
// comes from SEQST_BLOB_CONNECTION (or blob.connection in the config file),
// never from a flag, so it stays out of shell history.
func blobStore() (*blobsnap.Store, error) {
	cs := viper.GetString("blob.connection")
	if cs == "" {
		return nil, fmt.Errorf("no blob connection: set SEQST_BLOB_CONNECTION")
	}
	container := viper.GetString("blob.container")
	if container == "" {
		container = "seqst-snapshots"
	}
	return blobsnap.NewFromConnectionString(cs, container, blobsnap.WithLogger(logger()))
}

var pushCmd = &cobra.Command{
	Use:   "push [name]",
	Short: "Upload the index as a named snapshot blob",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openIndex()
		if err != nil {
			return err
		}
		defer t.Dispose()

		store, err := blobStore()
		if err != nil {
			return err
		}
		return store.Push(cmd.Context(), args[0], t)
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull [name]",
	Short: "Download a snapshot blob and rebuild it as an index file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := viper.GetString("index")
		if out == "" {
			return fmt.Errorf("no output file: pass --index")
		}
		store, err := blobStore()
		if err != nil {
			return err
		}
		src, err := store.Pull(cmd.Context(), args[0], suffixtree.WithLogger(logger()))
		if err != nil {
			return err
		}
		defer src.Dispose()

		t, err := suffixtree.BuildFile(src.Text().Bytes(), out, suffixtree.WithLogger(logger()))
		if err != nil {
			return err
		}
		defer t.Dispose()

		fmt.Printf("pulled %q into %s\n", args[0], out)
		return nil
	},
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshot blobs in the container",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := blobStore()
		if err != nil {
			return err
		}
		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
