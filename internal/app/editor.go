package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"unicode"

	fsutil "github.com/kk-code-lab/mdread/internal/fs"
	"github.com/kk-code-lab/mdread/internal/logging"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

var (
	commandBuilder = exec.Command
	editorLookPath = exec.LookPath
	ttyPath        = "/dev/tty"
)

// editorEnv lists the variables consulted for the editor, in order.
var editorEnv = []string{"VISUAL", "EDITOR"}

// fallbackEditors are tried when no variable names a usable editor.
var fallbackEditors = map[string][][]string{
	"windows": {{"code", "--wait"}, {"notepad.exe"}},
	"":        {{"vim"}, {"vi"}, {"nano"}},
}

func detectEditorCommand() ([]string, bool) {
	return findEditor(runtime.GOOS, os.Getenv, editorLookPath)
}

// findEditor returns the editor command with its executable resolved.
func findEditor(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	for _, name := range editorEnv {
		if args, ok := resolveEditor(parseEditorCommand(getenv(name)), lookPath); ok {
			return args, true
		}
	}

	fallbacks, ok := fallbackEditors[strings.ToLower(goos)]
	if !ok {
		fallbacks = fallbackEditors[""]
	}
	for _, candidate := range fallbacks {
		if args, ok := resolveEditor(candidate, lookPath); ok {
			return args, true
		}
	}
	return nil, false
}

// resolveEditor looks up args[0] and returns a copy of args with the
// resolved executable.
func resolveEditor(args []string, lookPath func(string) (string, error)) ([]string, bool) {
	if len(args) == 0 || args[0] == "" {
		return nil, false
	}
	exe, err := lookPath(fsutil.ExpandHome(args[0]))
	if err != nil {
		return nil, false
	}
	return append([]string{exe}, args[1:]...), true
}

// parseEditorCommand splits an $EDITOR value into arguments. Quotes group
// words and are removed; empty arguments are dropped.
func parseEditorCommand(value string) []string {
	var (
		args  []string
		word  strings.Builder
		quote rune
	)
	flush := func() {
		if word.Len() > 0 {
			args = append(args, word.String())
			word.Reset()
		}
	}
	for _, r := range value {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return args
}

// handleEditDocument runs the editor on the current file and reloads it once
// the editor exits.
func (app *Application) handleEditDocument() bool {
	if len(app.editorCmd) == 0 || app.state.Path == "" || app.state.Path == stdinPath {
		return false
	}

	if err := app.openFileInEditor(app.state.Path); err != nil {
		app.logger.Warn("editor failed", logging.FieldPath, app.state.Path, logging.FieldError, err)
		app.state.LastError = err
		return true
	}
	app.dispatch(statepkg.ReloadDocumentAction{})
	return true
}

func (app *Application) openFileInEditor(filePath string) error {
	args := app.editorArgsWithFile(filePath)

	var tty *os.File
	if runtime.GOOS != "windows" {
		var err error
		tty, err = os.OpenFile(ttyPath, os.O_RDWR, 0)
		if err != nil {
			tty = nil
		} else {
			defer func() {
				_ = tty.Close()
			}()
		}
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(args[0], args[1:]...)
	if tty != nil {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}
	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()

	if runErr != nil {
		return fmt.Errorf("%s: %w", args[0], runErr)
	}
	return nil
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}
