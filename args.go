package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// Args are command line arguments.
type Args struct {
	ConfigFile string

	Server  string
	Channel string
	Nick    string
	Port    string

	// nil if not given so the config file can decide.
	TLS *bool
	Raw *bool

	// Read chat from the terminal.
	Interactive bool
}

func getArgs(name string, argv []string, output io.Writer) (Args, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [options] [server channel]\n", name)
		fs.PrintDefaults()
	}

	configFile := fs.String("config", "", "Configuration file.")
	nick := fs.String("nick", "", "Nickname to use.")
	port := fs.String("port", "", "Port to connect to (default "+defaultPort+").")
	useTLS := fs.Bool("tls", false, "Connect using TLS.")
	raw := fs.Bool("raw", false, "Print messages as they are on the wire.")
	interactive := fs.Bool("interactive", true, "Read chat to send from the terminal.")

	if err := fs.Parse(argv); err != nil {
		return Args{}, err
	}

	args := Args{
		Nick:        *nick,
		Port:        *port,
		Interactive: *interactive,
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tls":
			args.TLS = useTLS
		case "raw":
			args.Raw = raw
		}
	})

	if len(*configFile) > 0 {
		configPath, err := filepath.Abs(*configFile)
		if err != nil {
			return Args{}, errors.Wrapf(err,
				"unable to determine absolute path to config file: %s", *configFile)
		}
		args.ConfigFile = configPath
	}

	if args.Port != "" {
		if _, err := strconv.ParseUint(args.Port, 10, 16); err != nil {
			return Args{}, errors.Errorf("invalid port: %s", args.Port)
		}
	}

	switch fs.NArg() {
	case 0:
	case 2:
		args.Server = fs.Arg(0)
		args.Channel = fs.Arg(1)
	default:
		fs.Usage()
		return Args{}, errors.New("you must provide both a server and a channel")
	}

	if args.ConfigFile == "" && args.Server == "" {
		fs.Usage()
		return Args{}, errors.New(
			"you must provide a server and a channel or a configuration file")
	}

	return args, nil
}
