package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pubfs/internal/checksum"
	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/internal/tui"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

var hashAlgorithm string

var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "Print the digest of a file",
	Long: `hash prints "<digest>  <file>" in the format of md5sum and friends.

The algorithm defaults to hash_algorithm from the config.`,
	Args: RequirePath,
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVar(&hashAlgorithm, "algorithm", "", "Digest algorithm (default from config)")
	_ = hashCmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
}

func runHash(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	algorithm := hashAlgorithm
	if algorithm == "" {
		algorithm = s.cfg.HashAlgorithm
	}
	if !checksum.Supported(algorithm) {
		return fmt.Errorf("%w: %q (supported: %v)", pubfs.ErrUnsupportedAlgorithm, algorithm, checksum.Algorithms())
	}

	file := fstree.NewFile(args[0])
	info, err := file.Exists(ctx)
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("%w: %s", pubfs.ErrSourceNotFound, file)
	}
	digest, err := file.Hash(ctx, algorithm)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	paint := tui.NewPainter(tui.IsStyled(out))
	fmt.Fprintf(out, "%s  %s\n", digest, paint.Muted(file.Path()))
	return nil
}
