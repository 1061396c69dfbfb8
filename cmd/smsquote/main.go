// Command smsquote prepares an SMS the way the server does and prints the
// final text, segment count and price as YAML.
//
//	smsquote -v name=Anna "Hej {{name}}, välkommen!"
//	echo "Hej {{name}}" | smsquote --list
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
	"sms_composer/compose"
	"sms_composer/config"
)

type options struct {
	OptOutFile  string            `short:"f" long:"opt-out" description:"YAML file with opt-out text and markers"`
	UnitPrice   float64           `short:"p" long:"price" description:"Price per segment" default:"0.35"`
	MaxSegments int               `short:"m" long:"max-segments" description:"Longest sendable message, in segments" default:"10"`
	Vars        map[string]string `short:"v" long:"var" description:"Template variable as name=value" key-value-delimiter:"="`
	List        bool              `short:"l" long:"list" description:"Only list the template variables"`
}

type quote struct {
	compose.Prepared `yaml:",inline"`
	Sendable         bool `yaml:"sendable"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] [message]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	message := strings.Join(rest, " ")
	if len(rest) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read message: %v\n", err)
			return 2
		}
		message = string(data)
	}

	enc := yaml.NewEncoder(stdout)
	defer enc.Close()

	if opts.List {
		if err := enc.Encode(map[string][]string{"variables": compose.UniqueVariables(compose.Sanitize(message))}); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		return 0
	}

	pipeline := compose.NewPipeline()
	pipeline.UnitPrice = opts.UnitPrice
	pipeline.MaxSegments = opts.MaxSegments
	if opts.OptOutFile != "" {
		policy, err := config.LoadOptOut(opts.OptOutFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		pipeline.OptOut = policy
	}

	prepared := pipeline.Prepare(message, opts.Vars)
	sendable := prepared.WithinLimit && !compose.IsBlank(message, opts.Vars)
	if err := enc.Encode(quote{Prepared: prepared, Sendable: sendable}); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if !sendable {
		return 1
	}
	return 0
}
