// Package cli routes subcommands and maps store results to exit codes.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aybkr/tudu/internal/config"
	"github.com/aybkr/tudu/internal/model"
	"github.com/aybkr/tudu/internal/store"
	"github.com/aybkr/tudu/internal/store/jsonstore"
	"github.com/aybkr/tudu/internal/tui"
	"github.com/aybkr/tudu/internal/ui"
)

// Options tune behavior from root flags and carry the wired dependencies.
type Options struct {
	Group  bool // plain listing grouped by pending/done
	Config *config.Config
	Logger *log.Logger
	Styles ui.Styles
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doInteractive(opt)

	case "list":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			opt.Styles.Fail("usage: tudu add <description...>")
			return 2
		}
		return doAdd(strings.Join(a, " "), opt)

	case "done":
		n, code := parseIndex(a, "done", opt)
		if code != 0 {
			return code
		}
		return doToggle(n, opt)

	case "rm":
		n, code := parseIndex(a, "rm", opt)
		if code != 0 {
			return code
		}
		return doRemove(n, opt)

	case "edit":
		if len(a) < 2 {
			opt.Styles.Fail("usage: tudu edit <index> <description...>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			opt.Styles.Fail("edit: not a number: " + a[0])
			return 2
		}
		return doEdit(n, strings.Join(a[1:], " "), opt)

	case "mv":
		if len(a) != 2 {
			opt.Styles.Fail("usage: tudu mv <from> <to>")
			return 2
		}
		from, err1 := strconv.Atoi(a[0])
		to, err2 := strconv.Atoi(a[1])
		if err1 != nil || err2 != nil {
			opt.Styles.Fail("mv: indexes must be numbers")
			return 2
		}
		return doMove(from, to, opt)

	case "search":
		if len(a) == 0 {
			opt.Styles.Fail("usage: tudu search <query...>")
			return 2
		}
		return doSearch(strings.Join(a, " "), opt)
	}

	opt.Styles.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

// PrintHelp writes usage to stdout.
func PrintHelp() {
	fmt.Printf(`tudu - a tiny todo list

Usage:
  tudu <subcommand> [args]

Subcommands:
  add <description...>   Add a new item (description can be multiple words)
  ls                     Open the interactive list
  list                   Print the list (honors -group)
  done <index>           Toggle done for item at 1-based index
  rm <index>             Remove item at 1-based index
  edit <index> <desc...> Replace the description of the item at 1-based index
  mv <from> <to>         Move an item to a new 1-based position
  search <query...>      Print items whose description contains the query

Examples:
  tudu add "Buy milk"
  tudu ls
  tudu done 2
  tudu mv 3 1
  tudu search milk
`)
}

func parseIndex(a []string, cmd string, opt Options) (int, int) {
	if len(a) != 1 {
		opt.Styles.Fail("usage: tudu " + cmd + " <index>")
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		opt.Styles.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

// openStore builds the file-backed store from config.
func openStore(opt Options) *store.Store {
	return store.Open(jsonstore.New(opt.Config.DataDir), opt.Logger)
}

// idAt resolves a 1-based user index to a todo id, printing the usual
// out-of-range message on failure.
func idAt(st *store.Store, userIndex int, opt Options) (string, bool) {
	items := st.Items()
	if userIndex < 1 || userIndex > len(items) {
		opt.Styles.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(items), userIndex))
		fmt.Fprintln(os.Stderr, opt.Styles.Muted.Render("Hint: run `tudu list` to see valid indexes"))
		return "", false
	}
	return items[userIndex-1].ID, true
}

func doInteractive(opt Options) int {
	st := openStore(opt)
	if err := tui.Run(st, opt.Styles); err != nil {
		opt.Styles.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(opt Options) int {
	st := openStore(opt)
	printItems(st.Items(), opt)
	return 0
}

func doAdd(description string, opt Options) int {
	st := openStore(opt)
	if _, err := st.Add(description); err != nil {
		opt.Styles.Fail("add: " + err.Error())
		return 2
	}
	opt.Styles.OK("added")
	return 0
}

func doToggle(userIndex int, opt Options) int {
	st := openStore(opt)
	id, ok := idAt(st, userIndex, opt)
	if !ok {
		return 2
	}
	done, err := st.Toggle(id)
	if err != nil {
		opt.Styles.Fail("done: " + err.Error())
		return 1
	}
	if done {
		opt.Styles.OK("done")
	} else {
		opt.Styles.OK("pending again")
	}
	return 0
}

func doRemove(userIndex int, opt Options) int {
	st := openStore(opt)
	id, ok := idAt(st, userIndex, opt)
	if !ok {
		return 2
	}
	if err := st.Remove(id); err != nil {
		opt.Styles.Fail("rm: " + err.Error())
		return 1
	}
	opt.Styles.OK("removed")
	return 0
}

func doEdit(userIndex int, description string, opt Options) int {
	st := openStore(opt)
	id, ok := idAt(st, userIndex, opt)
	if !ok {
		return 2
	}
	if err := st.Update(id, description); err != nil {
		opt.Styles.Fail("edit: " + err.Error())
		return 2
	}
	opt.Styles.OK("updated")
	return 0
}

func doMove(from, to int, opt Options) int {
	st := openStore(opt)
	id, ok := idAt(st, from, opt)
	if !ok {
		return 2
	}
	if _, ok := idAt(st, to, opt); !ok {
		return 2
	}
	if err := st.Move(id, to-from); err != nil {
		opt.Styles.Fail("mv: " + err.Error())
		return 1
	}
	opt.Styles.OK("moved")
	return 0
}

func doSearch(query string, opt Options) int {
	st := openStore(opt)
	matches := st.Filter(query)
	if len(matches) == 0 {
		fmt.Println(opt.Styles.Muted.Render("no matches"))
		return 0
	}
	printItems(matches, opt)
	return 0
}

// printItems renders the plain listing with a progress header. With -group
// the pending items come first, then the done ones.
func printItems(items []model.Todo, opt Options) {
	s := opt.Styles
	done := 0
	for _, t := range items {
		if t.Done {
			done++
		}
	}
	fmt.Println(s.Title.Render("Todos") + "  " + ui.ProgressBar(done, len(items), 28))

	ordered := items
	if opt.Group {
		ordered = make([]model.Todo, 0, len(items))
		for _, t := range items {
			if !t.Done {
				ordered = append(ordered, t)
			}
		}
		for _, t := range items {
			if t.Done {
				ordered = append(ordered, t)
			}
		}
	}

	// 1-based positions within this listing; with -group the original
	// position is shown so done/rm/edit still line up.
	pos := make(map[string]int, len(items))
	for i, t := range items {
		pos[t.ID] = i + 1
	}
	for _, t := range ordered {
		box := s.Muted.Render(s.BoxUnchecked)
		text := t.Description
		if t.Done {
			box = s.Success.Render(s.BoxChecked)
			text = s.Done.Render(text)
		}
		fmt.Printf("%s %s %s\n", s.Muted.Render(fmt.Sprintf("%2d.", pos[t.ID])), box, text)
	}
}
