package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"treepak/pak"
	"treepak/ui"
)

type (
	Args struct {
		Pack    *PackCmd   `arg:"subcommand:pack" help:"build a container from a directory"`
		Unpack  *UnpackCmd `arg:"subcommand:unpack" help:"extract a container into a directory"`
		List    *ListCmd   `arg:"subcommand:list" help:"print the entries of a container"`
		Browse  *BrowseCmd `arg:"subcommand:browse" help:"explore a container interactively"`
		Help    *HelpCmd   `arg:"subcommand:help" help:"print this help"`
		Verbose bool       `arg:"-v,--verbose" help:"log every block read or written"`
	}
	PackCmd struct {
		File      string `arg:"positional,required" help:"path to the container to create" placeholder:"FILE"`
		Directory string `arg:"positional,required" help:"directory to pack" placeholder:"DIRECTORY"`
	}
	UnpackCmd struct {
		File      string `arg:"positional,required" help:"path to the container to read" placeholder:"FILE"`
		Directory string `arg:"positional,required" help:"destination, replaced if it exists" placeholder:"DIRECTORY"`
	}
	ListCmd struct {
		File string `arg:"positional,required" help:"path to the container to read" placeholder:"FILE"`
		JSON bool   `arg:"--json" help:"print the tree as JSON"`
	}
	BrowseCmd struct {
		File string `arg:"positional,required" help:"path to the container to read" placeholder:"FILE"`
	}
	HelpCmd struct{}
)

// ErrNoCommand is reported when no subcommand is given.
var ErrNoCommand = errors.New("no command given")

var parserConfig = arg.Config{Program: "treepak"}

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Pack a directory tree into a single container file,",
			"and unpack it back.",
		},
		"\n",
	)
	des += "\n"
	return des
}

// Run parses argv, executes the command and returns the process exit code.
// Errors are printed to stdout.
func Run(argv []string, stdout io.Writer) int {
	args := Args{}
	parser, err := arg.NewParser(parserConfig, &args)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	err = parser.Parse(argv)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stdout, err)
		parser.WriteUsage(stdout)
		return 1
	}

	logger := pak.NewLogger()
	if args.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := execute(args, stdout, logger); err != nil {
		fmt.Fprintln(stdout, err)
		if errors.Is(err, ErrNoCommand) {
			parser.WriteUsage(stdout)
		}
		return 1
	}
	return 0
}

func execute(args Args, stdout io.Writer, logger *log.Logger) error {
	switch {
	case args.Pack != nil:
		cmd := args.Pack
		if err := pak.Pack(cmd.File, cmd.Directory, pak.WithLogger(logger)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Done packing %s into %s\n", cmd.Directory, cmd.File)
	case args.Unpack != nil:
		cmd := args.Unpack
		if err := pak.Unpack(cmd.File, cmd.Directory, pak.WithLogger(logger)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Done unpacking %s into %s\n", cmd.File, cmd.Directory)
	case args.List != nil:
		return list(*args.List, stdout, logger)
	case args.Browse != nil:
		root, err := pak.List(args.Browse.File, pak.WithLogger(logger))
		if err != nil {
			return err
		}
		return ui.Start(args.Browse.File, root)
	case args.Help != nil:
		// the parser's own help would describe the help subcommand, not the program
		root, err := arg.NewParser(parserConfig, &Args{})
		if err != nil {
			return errors.Wrap(err, "execute error building help")
		}
		root.WriteHelp(stdout)
	default:
		return ErrNoCommand
	}
	return nil
}

func list(cmd ListCmd, stdout io.Writer, logger *log.Logger) error {
	root, err := pak.List(cmd.File, pak.WithLogger(logger))
	if err != nil {
		return err
	}

	if cmd.JSON {
		bs, err := json.MarshalIndent(root.ToLinkedHashMap(), "", "  ")
		if err != nil {
			return errors.Wrap(err, "list error marshalling tree to JSON")
		}
		fmt.Fprintln(stdout, string(bs))
		return nil
	}

	for _, path := range root.Paths() {
		fmt.Fprintln(stdout, path)
	}
	return nil
}

func Start() {
	os.Exit(Run(os.Args[1:], os.Stdout))
}
