package cli

import "strings"

// valueFlags are the flags that consume the following argument as their value.
var valueFlags = map[string]bool{
	"--output":      true,
	"-o":            true,
	"--schema-file": true,
	"--log-level":   true,
}

// normalizeArgs moves flags found after the positional argument in front of it, so that
// `netreport <dir> --output <file>` parses the same as `netreport --output <file> <dir>`.
// A `--` terminator stops normalization and passes the rest through as positionals.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, len(args))

	for i := 1; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positionals = append(positionals, args[i:]...)
			break
		}

		if !strings.HasPrefix(arg, "-") {
			positionals = append(positionals, arg)
			continue
		}

		flags = append(flags, arg)

		if valueFlags[arg] && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}

	normalized := make([]string, 0, len(args))
	normalized = append(normalized, args[0])
	normalized = append(normalized, flags...)
	normalized = append(normalized, positionals...)

	return normalized
}
