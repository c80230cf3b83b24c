package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/internal/manifest"
	"github.com/vvka-141/pubfs/internal/tui"
)

var manifestFlags struct {
	algorithm string
	output    string
	excludes  []string
}

var manifestCmd = &cobra.Command{
	Use:   "manifest <path>",
	Short: "Record the digest of every file below a directory",
	Long: `manifest hashes every file below <path> and prints "<digest>  ./<file>"
lines sorted by path. With --output the manifest is written as JSON instead,
ready for 'pubfs verify'.`,
	Example: `  pubfs manifest ./dist
  pubfs manifest ./dist --algorithm sha256 --output ./dist.manifest.json`,
	Args:              RequirePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runManifest,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <path> <manifest>",
	Short: "Check a directory against a saved manifest",
	Long: `verify rebuilds the manifest of <path> with the algorithm recorded in
<manifest> and lists files that were added, removed or changed since.`,
	Args: RequireSourceAndDest,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(manifestCmd, verifyCmd)
	manifestCmd.Flags().StringVar(&manifestFlags.algorithm, "algorithm", "", "Digest algorithm (default from config)")
	manifestCmd.Flags().StringVarP(&manifestFlags.output, "output", "o", "", "Write the manifest as JSON to this file")
	manifestCmd.Flags().StringSliceVar(&manifestFlags.excludes, "exclude", nil, "Skip files whose name matches this glob (repeatable)")
	_ = manifestCmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
}

func runManifest(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	algorithm := manifestFlags.algorithm
	if algorithm == "" {
		algorithm = s.cfg.HashAlgorithm
	}
	builder, err := manifest.NewBuilder(algorithm, manifestFlags.excludes...)
	if err != nil {
		return err
	}

	m, err := builder.Build(ctx, fstree.NewDirectory(args[0]))
	if err != nil {
		return err
	}
	s.logger.Verbose("hashed %d files with %s", len(m.Entries), m.Algorithm)

	if manifestFlags.output != "" {
		out := fstree.NewFile(manifestFlags.output)
		if err := manifest.Save(ctx, out, m); err != nil {
			return err
		}
		s.logger.Info("manifest written to %s", out)
		return nil
	}

	w := cmd.OutOrStdout()
	paint := tui.NewPainter(tui.IsStyled(w))
	for _, e := range m.Entries {
		fmt.Fprintf(w, "%s  %s\n", paint.Muted(e.Digest), e.Path)
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	want, err := manifest.Load(ctx, fstree.NewFile(args[1]))
	if err != nil {
		return err
	}
	builder, err := manifest.NewBuilder(want.Algorithm)
	if err != nil {
		return err
	}
	got, err := builder.Build(ctx, fstree.NewDirectory(args[0]))
	if err != nil {
		return err
	}

	changes, err := manifest.Compare(want, got)
	if err != nil {
		return err
	}
	printChanges(cmd.OutOrStdout(), changes)
	if changes.Empty() {
		s.logger.Verbose("%s matches %s (%d files)", args[0], args[1], len(got.Entries))
	}
	return changes.Err()
}

func printChanges(w io.Writer, c manifest.Changes) {
	for _, p := range c.Added {
		fmt.Fprintf(w, "+ %s\n", p)
	}
	for _, p := range c.Removed {
		fmt.Fprintf(w, "- %s\n", p)
	}
	for _, p := range c.Changed {
		fmt.Fprintf(w, "~ %s\n", p)
	}
}
