package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the base name of the
// target to confirm destructive operations.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading answers from
// in and writing prompts to out.
func NewInteractiveApprover(in io.Reader, out io.Writer) pubfs.Approver {
	return &InteractiveApprover{input: in, output: out}
}

// RequestApproval prompts the user to type the target's base name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	name := filepath.Base(target)
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to DELETE '%s' and everything below it\n", target)
	fmt.Fprintf(a.output, "\nTo confirm, type '%s' and press Enter: ", name)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == name {
			fmt.Fprintln(a.output, "✓ Confirmed. Deleting...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match '%s'. Operation cancelled.\n", input, name)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ pubfs.Approver = (*InteractiveApprover)(nil)
