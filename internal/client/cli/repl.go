package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	SetActive(ctx context.Context, args []string, active bool) error
	Report(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: whoami, dashboard, (l)ist, show, create, update, delete, stats, publish, activate, deactivate, report, logout, help, exit"
)

// public commands run without a session; everything else is guarded.
var public = map[string]bool{
	"help": true, "login": true, "exit": true, "quit": true,
}

// runREPL starts a simple read–eval–print loop for the admin console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                            show available commands
//	  - login                           authenticate, with a one-time code if asked
//	  - exit | quit                     leave the program
//
//	Logged in:
//	  - whoami                          show the current admin
//	  - dashboard                       analytics and counters
//	  - list <resource> [page] [...]    list a collection
//	  - show <resource> <id>            print one item as JSON
//	  - create <resource>               create from a JSON payload
//	  - update <resource> <id>          update from a JSON payload
//	  - delete <resource> <id>          delete an item
//	  - stats <resource>                collection counters
//	  - publish <testId> on|off         publish or unpublish a mock test
//	  - activate|deactivate <userId>    toggle a student account
//	  - report <kind> [from] [to]       tabular report
//	  - logout                          log out
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("examadmin %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !public[cmd] && !a.isLoggedIn(ctx) {
			printlnFn("Please log in first (type 'login').")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "create":
			cmdErr = a.Create(ctx, args)
		case "update":
			cmdErr = a.Update(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "stats":
			cmdErr = a.Stats(ctx, args)
		case "publish":
			cmdErr = a.Publish(ctx, args)
		case "activate":
			cmdErr = a.SetActive(ctx, args, true)
		case "deactivate":
			cmdErr = a.SetActive(ctx, args, false)
		case "report":
			cmdErr = a.Report(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
