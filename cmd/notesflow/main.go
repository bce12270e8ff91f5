package main

import (
	"os"
	"strings"

	"notesflow-cli/internal/cli"
)

var subcommands = map[string]bool{
	"auth": true, "notes": true, "tasks": true, "profile": true,
	"share": true, "config": true, "web": true,
	"help": true, "completion": true,
}

func isShareToken(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 16 || subcommands[s] {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func rewriteShareTokenArgs(argv []string) []string {
	// Convenience: `notesflow <share-token>` works like `notesflow share show <token>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv
	// before parsing. Persistent flags may come first (e.g. `notesflow --api-url
	// ... <token>`), so we look for the first positional token, not argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--api-url": true,
		"--format":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isShareToken(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "share", "show")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++ // skip the flag's value
			}
			continue
		}
		if isShareToken(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "share", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteShareTokenArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
