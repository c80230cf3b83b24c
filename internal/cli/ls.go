package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/internal/tui"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls <path>",
	Short: "List a directory",
	Long: `ls prints the directories of <path> followed by its files, one per line,
in the order the filesystem returns them. Directories carry a trailing
separator. With --recursive every file below <path> is printed relative to it.`,
	Args:              RequirePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "List every file below the directory")
}

func runLs(cmd *cobra.Command, args []string) error {
	if _, err := newSession(cmd); err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	paint := tui.NewPainter(tui.IsStyled(out))
	dir := fstree.NewDirectory(args[0])

	if lsRecursive {
		files, err := dir.Files(ctx, true)
		if err != nil {
			return err
		}
		for _, f := range files {
			rel, err := f.RelativeTo(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, paint.File(rel))
		}
		return nil
	}

	contents, err := dir.Contents(ctx)
	if err != nil {
		return err
	}
	for _, d := range contents.Dirs {
		fmt.Fprintln(out, paint.Dir(d.DirName()+string(filepath.Separator)))
	}
	for _, f := range contents.Files {
		fmt.Fprintln(out, paint.File(f.FileName()))
	}
	return nil
}
