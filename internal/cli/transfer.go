package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

type transferFlags struct {
	root      bool
	overwrite bool
	algorithm string
	name      string
}

var (
	copyFlags transferFlags
	moveFlags transferFlags
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <dest>",
	Short: "Copy a file or a directory tree",
	Long: `Copy copies <source> into <dest>.

A directory source has its entries copied into <dest>, or the directory itself
when --root is given. A file source lands inside <dest> when <dest> is an
existing directory or ends with a path separator, and at <dest> otherwise.

Files whose destination already holds the same digest are skipped. A
destination with different content is an error unless --overwrite is given.`,
	Example: `  pubfs copy ./build ./dist
  pubfs copy ./build ./dist --root
  pubfs copy ./README.md ./dist/ --overwrite`,
	Args:              RequireSourceAndDest,
	ValidArgsFunction: completeSourceAndDest,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(cmd, args, copyFlags, false)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <source> <dest>",
	Short: "Move a file or a directory tree",
	Long: `Move behaves like copy and then deletes <source>.

When nothing exists at the destination the move is a single rename.`,
	Args:              RequireSourceAndDest,
	ValidArgsFunction: completeSourceAndDest,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(cmd, args, moveFlags, true)
	},
}

func init() {
	rootCmd.AddCommand(copyCmd, moveCmd)
	registerTransferFlags(copyCmd, &copyFlags)
	registerTransferFlags(moveCmd, &moveFlags)
}

func registerTransferFlags(cmd *cobra.Command, flags *transferFlags) {
	cmd.Flags().BoolVar(&flags.root, "root", false, "Transfer the source directory itself rather than its entries")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace destination files whose content differs")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "", "Digest used to compare files (default from config)")
	cmd.Flags().StringVar(&flags.name, "name", "", "File name at the destination (file sources only)")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
}

func runTransfer(cmd *cobra.Command, args []string, flags transferFlags, move bool) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	src, dest := args[0], args[1]
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", pubfs.ErrSourceNotFound, src)
	}
	if err != nil {
		return err
	}

	opts := s.copyOptions(cmd, flags.overwrite, flags.algorithm)
	var result string
	if info.IsDir() {
		if flags.name != "" {
			return fmt.Errorf("invalid argument: --name only applies to file sources")
		}
		result, err = transferDirectory(ctx, fstree.NewDirectory(src), fstree.NewDirectory(dest), flags.root, move, opts)
	} else {
		if flags.name != "" {
			opts = append(opts, fstree.WithFileName(flags.name))
		}
		result, err = transferFile(ctx, fstree.NewFile(src), fileTarget(dest), move, opts)
	}
	if err != nil {
		return err
	}

	s.logger.Verbose("%s -> %s", src, result)
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func transferDirectory(ctx context.Context, src, dest fstree.Directory, root, move bool, opts []fstree.CopyOption) (string, error) {
	var (
		out fstree.Directory
		err error
	)
	if move {
		out, err = src.Move(ctx, dest, root, opts...)
	} else {
		out, err = src.Copy(ctx, dest, root, opts...)
	}
	return out.Path(), err
}

func transferFile(ctx context.Context, src fstree.File, dest fstree.Target, move bool, opts []fstree.CopyOption) (string, error) {
	var (
		out fstree.File
		err error
	)
	if move {
		out, err = src.Move(ctx, dest, opts...)
	} else {
		out, err = src.Copy(ctx, dest, opts...)
	}
	return out.Path(), err
}

// fileTarget treats dest as a directory when it exists as one or is spelled
// with a trailing separator.
func fileTarget(dest string) fstree.Target {
	if strings.HasSuffix(dest, string(os.PathSeparator)) || strings.HasSuffix(dest, "/") {
		return fstree.NewDirectory(dest)
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return fstree.NewDirectory(dest)
	}
	return fstree.NewFile(dest)
}
