package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/robertkrimen/isatty"
	"github.com/spf13/cobra"
	"github.com/vilterp/parsec/pkg/config"
	"github.com/vilterp/parsec/pkg/json_lang"
	"github.com/vilterp/parsec/pkg/parserlib"
	"github.com/vilterp/parsec/pkg/treesql_lang"
)

var languages = map[string]*parserlib.Language{
	json_lang.Language.Name:    json_lang.Language,
	treesql_lang.Language.Name: treesql_lang.Language,
}

type shell struct {
	language      *parserlib.Language
	showCallstack bool
	spewValues    bool
}

func main() {
	var configFile string
	var languageName string

	rootCmd := &cobra.Command{
		Use:   "shell",
		Short: "Parse lines of input interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			language, ok := languages[languageName]
			if !ok {
				return errors.Errorf("no such language: %q", languageName)
			}
			sh := &shell{
				language:      language,
				showCallstack: cfg.Parse.Diagnostics,
			}
			return sh.run(cfg)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&languageName, "language", json_lang.Language.Name, "language to parse")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (sh *shell) run(cfg *config.Config) error {
	// check if is TTY
	isInputTty := isatty.Check(os.Stdin.Fd())

	if isInputTty {
		fmt.Printf("%s shell\n", sh.language.Name)
		fmt.Println("\\h for help")
	}

	// initialize readline
	prompt := ""
	if isInputTty {
		prompt = fmt.Sprintf("%s> ", sh.language.Name)
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       cfg.Shell.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	for {
		line, readlineErr := l.Readline()
		if readlineErr != nil {
			fmt.Println("bye!")
			return nil
		}
		if len(strings.Trim(line, "\t ")) == 0 {
			continue
		}
		if sh.runCommand(line) {
			continue
		}
		sh.parse(line)
	}
}

// runCommand handles backslash commands, reporting whether line was one.
func (sh *shell) runCommand(line string) bool {
	switch line {
	case `\h`:
		fmt.Println(`\h	help`)
		fmt.Println(`\g	print grammar`)
		fmt.Println(`\c	toggle callstack on parse errors`)
		fmt.Println(`\v	toggle dumping values with their Go types`)
	case `\g`:
		rules := sh.language.Grammar.Serialize().Rules
		names := make([]string, 0, len(rules))
		for name := range rules {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %s\n", name, rules[name])
		}
	case `\c`:
		sh.showCallstack = !sh.showCallstack
		fmt.Println("callstack:", onOff(sh.showCallstack))
	case `\v`:
		sh.spewValues = !sh.spewValues
		fmt.Println("spew:", onOff(sh.spewValues))
	default:
		return false
	}
	return true
}

func (sh *shell) parse(input string) {
	var value interface{}
	var err error
	if sh.showCallstack {
		value, err = sh.language.ParseWithCallstack(input)
	} else {
		value, err = sh.language.Parse(input)
	}
	if err != nil {
		pe, ok := err.(*parserlib.ParseError)
		if !ok {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(pe.ShowInContext())
		if cs := pe.Callstack(); cs != nil {
			fmt.Println(cs.String())
		}
		return
	}
	if sh.spewValues {
		spew.Dump(value)
		return
	}
	printJSON("value", value)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func printJSON(tag string, thing interface{}) {
	indented, _ := json.MarshalIndent(thing, "", "  ")
	fmt.Printf("%s:\n%s\n", tag, indented)
}
