package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	lys "github.com/DAIOS-AI/lys"
)

const (
	appName     = "lys"
	historyFile = ".lys_history"
)

var banner = fmt.Sprintf("Lys %s console\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lys.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	cmd := "repl"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(lys.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lys %s

Usage:
  %s [repl]      Start the interactive console (default)
  %s version     Print the version

`, lys.Version, appName, appName)
}

// linerConsole adapts a *liner.State to the loop's LineReader and owns
// the console-side commands (":quit") so the language core never sees
// them.
type linerConsole struct {
	ln      *liner.State
	primary string
}

func (c *linerConsole) ReadLine(prompt string) (string, error) {
	for {
		line, err := c.ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		trimmed := strings.TrimSpace(line)
		if prompt == c.primary && strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return "", io.EOF
			}
			fmt.Printf("unknown command. Type :quit to exit.\n")
			continue
		}
		if trimmed != "" {
			c.ln.AppendHistory(line)
		}
		return line, nil
	}
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sess := lys.NewSession(lys.Builtins(os.Stdout))
	console := &linerConsole{ln: ln, primary: lys.PromptPrimary}
	loop := lys.NewLoop(sess, lys.ReadCompiler{}, console, os.Stderr, os.Stdout)

	for {
		err := loop.Run()
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C: drop any half-entered form, back to the primary prompt.
			loop.Reset()
			fmt.Println()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
	}
}
