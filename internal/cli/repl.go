package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Users(ctx context.Context, args []string) error
	AddUser(ctx context.Context, args []string) error
	EditUser(ctx context.Context, args []string) error
	DelUser(ctx context.Context, args []string) error
	UserMap(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	AddEvent(ctx context.Context, args []string) error
	EditEvent(ctx context.Context, args []string) error
	DelEvent(ctx context.Context, args []string) error
	ExportICS(ctx context.Context, args []string) error
	Markers(ctx context.Context, args []string) error
	AddMarker(ctx context.Context, args []string) error
	MoveMarker(ctx context.Context, args []string) error
	DelMarker(ctx context.Context, args []string) error
	Charts(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
}

type lineReader interface {
	ReadLine() (string, error)
}

const helpText = `Available commands:
  users                         list user records
  adduser                       add a user record
  edituser [id]                 edit a user record
  deluser [id]                  delete a user record
  usermap                       show user records as map markers
  events                        list calendar events
  addevent                      add a calendar event
  editevent [id]                edit a calendar event
  delevent [id]                 delete a calendar event
  exportics [file]              write events as iCalendar (stdout when no file)
  markers                       list placed markers
  addmarker [lat lng [label]]   place a marker
  movemarker [id lat lng]       move a marker
  delmarker [id]                delete a marker
  charts                        show user statistics
  reload                        reload every collection
  exit | quit                   leave the program`

// runREPL reads one command per line and dispatches it to a. Handler errors
// are reported and the loop continues. It returns on EOF, "exit" or "quit",
// or when ctx is done. A nil statusFn suppresses the prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in lineReader) {
	commands := map[string]func(context.Context, []string) error{
		"users":      a.Users,
		"adduser":    a.AddUser,
		"edituser":   a.EditUser,
		"deluser":    a.DelUser,
		"usermap":    a.UserMap,
		"events":     a.Events,
		"addevent":   a.AddEvent,
		"editevent":  a.EditEvent,
		"delevent":   a.DelEvent,
		"exportics":  a.ExportICS,
		"markers":    a.Markers,
		"addmarker":  a.AddMarker,
		"movemarker": a.MoveMarker,
		"delmarker":  a.DelMarker,
		"charts":     a.Charts,
		"reload":     a.Reload,
	}

	for ctx.Err() == nil {
		if statusFn != nil {
			printlnFn(fmt.Sprintf("crm (%s)> ", statusFn()))
		}
		line, err := in.ReadLine()
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		fn, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := fn(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}
