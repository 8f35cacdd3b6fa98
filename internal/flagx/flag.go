// Package flagx lets independent loaders pick their own flags out of
// os.Args without tripping over flags that belong to someone else.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns only the allowed flags (and their values) from args.
//
// Supported forms:
//
//	-c conf.json        flag and value as separate arguments
//	--config=conf.json  flag and value joined with '='
//
// A value is consumed only when the next argument does not start with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// stringFlag reads a single string flag known under several names.
func stringFlag(set string, names ...string) string {
	var value string

	allowed := make([]string, 0, len(names)*2)
	fs := flag.NewFlagSet(set, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", "")
		allowed = append(allowed, "-"+n, "--"+n)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))

	return value
}

// JsonConfigFlags returns the path passed with -c or -config, or "".
func JsonConfigFlags() string {
	return stringFlag("json", "c", "config")
}

// EnvFileFlags returns the path passed with -e or -env, or "".
func EnvFileFlags() string {
	return stringFlag("env", "e", "env")
}
