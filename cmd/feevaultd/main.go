package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	feevault "github.com/iov-one/feevault"
	baseapp "github.com/iov-one/feevault/app"
	"github.com/iov-one/feevault/cmd/feevaultd/app"
	"github.com/iov-one/feevault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".feevault"), "directory to store files under")
	flagGenesis  = flag.String("genesis", "", "genesis file, defaults to genesis.json in the home directory")
	flagLogLevel = flag.String("log-level", "info", "log level: debug, info, error or none")
)

func init() {
	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("feevaultd")
	fmt.Println("        Fee vault node")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Load the genesis file into a new state")
	fmt.Println("deliver Execute hex encoded transactions read from stdin, one block per line")
	fmt.Println("query   Query the committed state: query <path> [hex data]")
	fmt.Println("info    Print the height and hash of the committed state")
	fmt.Println("version Print the app version")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(*flagLogLevel)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
		return
	case "init":
		err = withApp(logger, func(a *baseapp.BaseApp) error { return initCmd(a) })
	case "deliver":
		err = withApp(logger, func(a *baseapp.BaseApp) error { return deliverCmd(a, os.Stdin, os.Stdout) })
	case "query":
		err = withApp(logger, func(a *baseapp.BaseApp) error { return queryCmd(a, rest, os.Stdout) })
	case "info":
		err = withApp(logger, func(a *baseapp.BaseApp) error { return infoCmd(a, os.Stdout) })
	case "version":
		fmt.Println(feevault.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "feevault")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// withApp opens the state kept in the home directory for the duration of
// fn.
func withApp(logger log.Logger, fn func(*baseapp.BaseApp) error) error {
	if err := os.MkdirAll(*flagHome, 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "home directory: %s", err)
	}
	kv, err := app.CommitKVStore(filepath.Join(*flagHome, "state.db"))
	if err != nil {
		return err
	}
	if c, ok := kv.(interface{ Close() }); ok {
		defer c.Close()
	}
	a, err := baseapp.NewBaseApp(app.Name, kv, app.TxDecoder, app.Stack(), app.QueryRouter(), app.Initializers(), logger)
	if err != nil {
		return err
	}
	return fn(a)
}

func initCmd(a *baseapp.BaseApp) error {
	path := *flagGenesis
	if path == "" {
		path = filepath.Join(*flagHome, "genesis.json")
	}
	gen, err := baseapp.LoadGenesis(path)
	if err != nil {
		return err
	}
	if err := a.InitChain(gen); err != nil {
		return err
	}
	id, err := a.Commit()
	if err != nil {
		return err
	}
	a.Logger().Info("chain initialized", "chain_id", gen.ChainID, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

// deliverCmd executes every line of r as a separate block, so that each
// transaction sees the state committed by the previous one.
func deliverCmd(a *baseapp.BaseApp, r io.Reader, w io.Writer) error {
	if a.ChainID() == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized")
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		raw, err := hex.DecodeString(line)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "transaction: %s", err)
		}

		info, err := a.Info()
		if err != nil {
			return err
		}
		a.BeginBlock(info.Version+1, time.Now().UTC())
		if _, err := a.CheckTx(raw); err != nil {
			fmt.Fprintf(w, "check failed: %s\n", err)
			continue
		}
		res, err := a.DeliverTx(raw)
		if err != nil {
			fmt.Fprintf(w, "deliver failed: %s\n", err)
		} else {
			fmt.Fprintf(w, "ok: %s\n", res.Log)
		}
		if _, err := a.Commit(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func queryCmd(a *baseapp.BaseApp, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "missing query path")
	}
	var data []byte
	if len(args) > 1 {
		var err error
		if data, err = hex.DecodeString(args[1]); err != nil {
			return errors.Wrapf(errors.ErrInput, "query data: %s", err)
		}
	}
	models, err := a.Query(args[0], data)
	if err != nil {
		return err
	}
	printModels(w, models)
	return nil
}

func printModels(w io.Writer, models []feevault.Model) {
	for _, m := range models {
		fmt.Fprintf(w, "%X\t%X\n", m.Key, m.Value)
	}
}

func infoCmd(a *baseapp.BaseApp, w io.Writer) error {
	id, err := a.Info()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "chain: %s\nheight: %d\nhash: %X\n", a.ChainID(), id.Version, id.Hash)
	return nil
}
