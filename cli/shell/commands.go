package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Koster99/personal-asistant/datastores"
	"github.com/Koster99/personal-asistant/views"
)

type command struct {
	name    string
	usage   string
	help    string
	minArgs int
	maxArgs int
	run     func(ctx context.Context, args []string) error
}

var (
	errExit  = errors.New("exit")
	errUsage = errors.New("usage")
)

// commands binds the command table to s. The table is built on demand
// since help has to list it.
func (s *Shell) commands() []command {
	return []command{
		{"add", "add <name> <phone> [birthday]", "Add a new contact or replace an existing one", 2, 3, s.add},
		{"phone", "phone <name> <phone>", "Change the phone of a contact", 2, 2, s.phone},
		{"unphone", "unphone <name>", "Clear the phone of a contact", 1, 1, s.unphone},
		{"remove", "remove <name>", "Remove an existing contact", 1, 1, s.remove},
		{"get", "get <name>", "Show a contact", 1, 1, s.get},
		{"birthday", "birthday <name>", "Show the days left to the birthday of a contact", 1, 1, s.birthday},
		{"search", "search <query>", "Search for a contact by name or phone", 0, 1, s.search},
		{"list", "list", "List all contacts", 0, 0, s.list},
		{"save", "save [file]", "Save the address book to a file", 0, 1, s.save},
		{"load", "load [file]", "Load the address book from a file", 0, 1, s.load},
		{"help", "help", "Show this help", 0, 0, s.help},
		{"exit", "exit", "Exit the program", 0, 0, s.exit},
	}
}

func (s *Shell) lookup(name string) (command, bool) {
	for _, c := range s.commands() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Commands lists the shell commands for help renderers.
func Commands() []views.Command {
	var s *Shell
	return listCommands(s.commands())
}

func listCommands(table []command) []views.Command {
	cmds := make([]views.Command, 0, len(table))
	for _, c := range table {
		cmds = append(cmds, views.Command{Name: c.usage, Help: c.help})
	}
	return cmds
}

func (s *Shell) add(_ context.Context, args []string) error {
	var birthday string
	if len(args) > 2 { //nolint: mnd // optional third argument
		birthday = args[2]
	}
	r, err := datastores.NewRecord(args[0], args[1], birthday)
	if err != nil {
		return err
	}

	_, exists := s.Book.GetRecord(r.Name())
	s.Book.AddRecord(r)
	if exists {
		s.View.RenderMessage(fmt.Sprintf("Contact %s updated.", r.Name()))
	} else {
		s.View.RenderMessage(fmt.Sprintf("Contact %s added.", r.Name()))
	}
	return nil
}

func (s *Shell) phone(_ context.Context, args []string) error {
	r, ok := s.Book.GetRecord(args[0])
	if !ok {
		s.View.RenderResults(nil)
		return nil
	}
	err := r.SetPhone(args[1])
	if err != nil {
		return err
	}
	s.View.RenderRecord(r)
	return nil
}

func (s *Shell) unphone(_ context.Context, args []string) error {
	r, ok := s.Book.GetRecord(args[0])
	if !ok {
		s.View.RenderResults(nil)
		return nil
	}
	r.ClearPhone()
	s.View.RenderRecord(r)
	return nil
}

func (s *Shell) remove(_ context.Context, args []string) error {
	_, ok := s.Book.GetRecord(args[0])
	s.Book.RemoveRecord(args[0])
	if !ok {
		s.View.RenderResults(nil)
		return nil
	}
	s.View.RenderMessage(fmt.Sprintf("Contact %s removed.", args[0]))
	return nil
}

func (s *Shell) get(_ context.Context, args []string) error {
	r, ok := s.Book.GetRecord(args[0])
	if !ok {
		s.View.RenderResults(nil)
		return nil
	}
	s.View.RenderRecord(r)
	return nil
}

func (s *Shell) birthday(_ context.Context, args []string) error {
	r, ok := s.Book.GetRecord(args[0])
	if !ok {
		s.View.RenderResults(nil)
		return nil
	}

	days, ok := r.DaysToBirthdayFrom(s.now())
	switch {
	case !ok:
		s.View.RenderMessage(fmt.Sprintf("Birthday of %s is unknown.", r.Name()))
	case days == 0:
		s.View.RenderMessage(fmt.Sprintf("Birthday of %s is today.", r.Name()))
	case days == 1:
		s.View.RenderMessage(fmt.Sprintf("Birthday of %s is tomorrow.", r.Name()))
	default:
		s.View.RenderMessage(fmt.Sprintf("Birthday of %s is in %d days.", r.Name(), days))
	}
	return nil
}

func (s *Shell) search(_ context.Context, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}
	s.View.RenderResults(s.Book.Search(query))
	return nil
}

func (s *Shell) list(_ context.Context, _ []string) error {
	s.View.RenderResults(s.Book.Records())
	return nil
}

func (s *Shell) save(ctx context.Context, args []string) error {
	path := s.path(args)
	start := time.Now()
	err := s.Book.SaveFile(path)
	if err != nil {
		return err
	}
	s.logger().DebugContext(ctx, "address book saved", "file", path, "contacts", s.Book.Len(), "dur", time.Since(start))
	s.View.RenderMessage(fmt.Sprintf("Saved %d contacts to %s.", s.Book.Len(), path))
	return nil
}

func (s *Shell) load(ctx context.Context, args []string) error {
	path := s.path(args)
	start := time.Now()
	err := s.Book.LoadFile(path)
	if err != nil {
		return err
	}
	s.logger().DebugContext(ctx, "address book loaded", "file", path, "contacts", s.Book.Len(), "dur", time.Since(start))
	s.View.RenderMessage(fmt.Sprintf("Loaded %d contacts from %s.", s.Book.Len(), path))
	return nil
}

func (s *Shell) help(_ context.Context, _ []string) error {
	s.View.RenderCommandList(listCommands(s.commands()))
	return nil
}

func (s *Shell) exit(_ context.Context, _ []string) error { return errExit }

func (s *Shell) path(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return s.Store
}
