package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/internal/ui"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

var ensureCmd = &cobra.Command{
	Use:               "ensure <path>",
	Short:             "Create a directory and any missing parents",
	Args:              RequirePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runEnsure,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a file or a directory tree",
	Long: `Delete removes a file, or a directory and everything below it.

Symbolic links are removed, never followed. A missing path is not an error.
With --confirm a directory is only deleted after its name is typed back.`,
	Args: RequirePath,
	RunE: runDelete,
}

var deleteConfirm bool

var emptyCmd = &cobra.Command{
	Use:               "empty <path>",
	Short:             "Delete everything inside a directory, keeping the directory",
	Args:              RequirePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runEmpty,
}

var pruneCmd = &cobra.Command{
	Use:   "prune <path>",
	Short: "Remove empty directories below a directory",
	Long: `Prune removes every directory below <path> that ends up with no files,
deepest first. <path> itself is kept even when it becomes empty.`,
	Args:              RequirePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runPrune,
}

func init() {
	rootCmd.AddCommand(ensureCmd, deleteCmd, emptyCmd, pruneCmd)
	deleteCmd.Flags().BoolVar(&deleteConfirm, "confirm", false, "Ask before deleting a directory")
}

func runEnsure(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	dir := fstree.NewDirectory(args[0])
	if err := dir.EnsureExists(ctx); err != nil {
		return err
	}
	s.logger.Verbose("ensured %s", dir)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	info, err := os.Lstat(args[0])
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Verbose("%s does not exist, nothing to delete", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	if info.IsDir() && deleteConfirm {
		approver := ui.NewInteractiveApprover(cmd.InOrStdin(), cmd.ErrOrStderr())
		approved, err := approver.RequestApproval(ctx, args[0])
		if err != nil {
			return err
		}
		if !approved {
			return fmt.Errorf("%w: delete %s", pubfs.ErrNotApproved, args[0])
		}
	}

	if info.IsDir() {
		err = fstree.NewDirectory(args[0]).Delete(ctx)
	} else {
		err = fstree.NewFile(args[0]).Delete(ctx)
	}
	if err != nil {
		return err
	}
	s.logger.Verbose("deleted %s", args[0])
	return nil
}

func runEmpty(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	dir := fstree.NewDirectory(args[0])
	if err := dir.Empty(ctx); err != nil {
		return err
	}
	s.logger.Verbose("emptied %s", dir)
	return nil
}

func runPrune(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	dir := fstree.NewDirectory(args[0])
	if err := dir.Prune(ctx); err != nil {
		return err
	}
	s.logger.Verbose("pruned %s", dir)
	return nil
}
