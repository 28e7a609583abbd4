package fileops

import "strings"

// DeletedPaths extracts the paths a shell command appears to remove. This is
// a best-effort classifier over free-form command text, not a shell parser.
// Grammar covered: the command is split into segments at `&&`, `||`, `;` and
// `|`; a segment whose command word is `rm`, or whose first two words are
// `git rm`, contributes its non-flag arguments. Quotes around an argument are
// stripped; glob arguments are taken literally. Aliases, wrappers, `find
// -delete` and other shell forms are out of scope.
func DeletedPaths(command string) []string {
	var paths []string
	for _, segment := range splitSegments(command) {
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			continue
		}

		var args []string
		switch {
		case fields[0] == "rm":
			args = fields[1:]
		case fields[0] == "git" && len(fields) > 1 && fields[1] == "rm":
			args = fields[2:]
		default:
			continue
		}

		endOfFlags := false
		for _, arg := range args {
			if !endOfFlags {
				if arg == "--" {
					endOfFlags = true
					continue
				}
				if strings.HasPrefix(arg, "-") {
					continue
				}
			}
			if path := unquote(arg); path != "" {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

// splitSegments breaks a command line at &&, ||, ; and | boundaries.
func splitSegments(command string) []string {
	replacer := strings.NewReplacer("&&", "\n", "||", "\n", ";", "\n", "|", "\n")
	return strings.Split(replacer.Replace(command), "\n")
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
