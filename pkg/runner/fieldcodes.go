package runner

import (
	"strings"

	"github.com/lvim-tech/qlaunch/pkg/desktop"
)

// File and URL codes expand to nothing since the launcher never passes
// arguments. %d, %D, %n, %N, %v and %m are deprecated and dropped as well.
var droppedCodes = map[string]bool{
	"%f": true, "%F": true, "%u": true, "%U": true,
	"%d": true, "%D": true, "%n": true, "%N": true,
	"%v": true, "%m": true,
}

// ExpandFieldCodes applies the desktop entry Exec field codes to args.
func ExpandFieldCodes(args []string, entry desktop.Entry) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if droppedCodes[arg] {
			continue
		}
		if arg == "%i" {
			if entry.Icon != "" {
				out = append(out, "--icon", entry.Icon)
			}
			continue
		}
		if expanded := expandInline(arg, entry); expanded != "" || arg == "" {
			out = append(out, expanded)
		}
	}
	return out
}

func expandInline(arg string, entry desktop.Entry) string {
	if !strings.ContainsRune(arg, '%') {
		return arg
	}

	var b strings.Builder
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' || i == len(arg)-1 {
			b.WriteByte(arg[i])
			continue
		}
		i++
		switch arg[i] {
		case '%':
			b.WriteByte('%')
		case 'c':
			b.WriteString(entry.Name)
		case 'k':
			b.WriteString(entry.Path)
		case 'i':
			b.WriteString(entry.Icon)
		case 'f', 'F', 'u', 'U', 'd', 'D', 'n', 'N', 'v', 'm':
		default:
			// not a field code, keep it as written
			b.WriteByte('%')
			b.WriteByte(arg[i])
		}
	}
	return b.String()
}
