package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Menu(ctx context.Context, search string) error
	AddToCart(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	Tables(ctx context.Context, args []string) error
	SelectTable(ctx context.Context, args []string) error
	Reserve(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, menu [search], add <id> [qty], cart, tables <date> <time> <party>, select <table>, reserve, exit"
	helpSignedIn  = "Available commands: whoami, logout, menu [search], add <id> [qty], cart, tables <date> <time> <party>, select <table>, reserve, exit"
)

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit".
//
//	help                            show available commands
//	register | login | logout       manage the session
//	whoami                          show the signed-in user
//	menu [search]                   list the menu, optionally filtered
//	add <id> [qty]                  add a menu item to the cart
//	cart                            reload and show the cart
//	tables <date> <time> <party>    look up free tables
//	select <table>                  choose one of the free tables
//	reserve                         book the selected table
//	exit | quit                     leave the program
//
// Errors returned by handlers are ignored here; handlers report their own
// failures, mostly through notifications.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("diner> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "menu":
			_ = a.Menu(ctx, strings.Join(args, " "))

		case "add":
			_ = a.AddToCart(ctx, args)

		case "cart":
			_ = a.ShowCart(ctx)

		case "tables":
			_ = a.Tables(ctx, args)

		case "select":
			_ = a.SelectTable(ctx, args)

		case "reserve":
			_ = a.Reserve(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}
