// Package generate maps a recognized intent plus extracted slots to a literal
// shell command string.
package generate

import (
	"regexp"
	"strings"

	"github.com/doeshing/nlsh-go/internal/domain"
)

// Auxiliary patterns that mine the raw input for values the slot heuristics
// miss (commit messages, branch names, file extensions, search terms).
var (
	extensionRE    = regexp.MustCompile(`\.(\w+)\s+files?`)
	searchTermRE   = regexp.MustCompile(`(?:for|containing|with)\s+['"]?(\w+)['"]?`)
	commitMsgRE    = regexp.MustCompile(`(?:message|msg|-m)\s+['"]?([^'"]+)['"]?`)
	commitMsgAltRE = regexp.MustCompile(`(?:with message|as)\s+(.+)`)
	branchRE       = regexp.MustCompile(`(?:to|branch)\s+(\w+)`)
	digitsRE       = regexp.MustCompile(`^\d+$`)
	sanitizeRE     = regexp.MustCompile(`[^A-Za-z0-9._/ ~-]`)
)

// Generator translates parsed commands into shell strings via per-category
// rules and a mutable template table.
type Generator struct {
	templates map[string]string
}

// NewGenerator builds a generator with the built-in template table.
func NewGenerator() *Generator {
	return &Generator{
		templates: map[string]string{
			"create_file":      "touch {filename}",
			"delete_file":      "rm {filename}",
			"copy_file":        "cp {source} {destination}",
			"move_file":        "mv {source} {destination}",
			"read_file":        "cat {filename}",
			"create_directory": "mkdir -p {dirname}",
			"change_directory": "cd {path}",
			"list_directory":   "ls -la {path}",
			"find_files":       "find {path} -name '{pattern}'",
			"search_content":   "grep -r '{pattern}' {path}",
			"git_status":       "git status",
			"git_add":          "git add {path}",
			"git_commit":       "git commit -m '{message}'",
			"git_push":         "git push {remote} {branch}",
			"git_pull":         "git pull {remote} {branch}",
		},
	}
}

// Generate dispatches on the command category. An empty result means no rule
// matched; that is data, not an error.
func (g *Generator) Generate(cmd domain.ParsedCommand) string {
	switch cmd.Category {
	case domain.CategoryFileSystem:
		return g.fileCommand(cmd)
	case domain.CategoryNavigation:
		return g.navigationCommand(cmd)
	case domain.CategorySearch:
		return g.searchCommand(cmd)
	case domain.CategoryGit:
		return g.gitCommand(cmd)
	case domain.CategoryProcess:
		return g.processCommand(cmd)
	case domain.CategorySystem:
		return g.systemCommand(cmd)
	default:
		return ""
	}
}

// AddTemplate registers or replaces an action template using {name}
// placeholders.
func (g *Generator) AddTemplate(action, template string) {
	g.templates[action] = template
}

// Template returns the registered template for an action.
func (g *Generator) Template(action string) (string, bool) {
	tmpl, ok := g.templates[action]
	return tmpl, ok
}

// ExpandTemplate substitutes every {name} placeholder with its value.
// Unknown placeholders are left untouched.
func (g *Generator) ExpandTemplate(template string, vars map[string]string) string {
	result := template
	for name, value := range vars {
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return result
}

// Sanitize keeps only characters safe to embed in a generated command. It is
// a scrub, not full shell escaping; execution must still avoid interpolating
// unsanitized values.
func (g *Generator) Sanitize(input string) string {
	return sanitizeRE.ReplaceAllString(input, "")
}

func (g *Generator) fileCommand(cmd domain.ParsedCommand) string {
	vars := cmd.SlotValues()

	appendFirst := func(base string, names ...string) string {
		for _, name := range names {
			if v, ok := vars[name]; ok {
				return base + " " + v
			}
		}
		return base
	}

	switch cmd.Action {
	case "create_file":
		return appendFirst("touch", "path", "filename")
	case "delete_file":
		return appendFirst("rm", "path", "filename")
	case "copy_file":
		out := "cp"
		if v, ok := vars["source"]; ok {
			out += " " + v
		}
		if v, ok := vars["destination"]; ok {
			out += " " + v
		}
		return out
	case "move_file":
		out := "mv"
		if v, ok := vars["source"]; ok {
			out += " " + v
		}
		if v, ok := vars["destination"]; ok {
			out += " " + v
		}
		return out
	case "read_file":
		return appendFirst("cat", "path", "filename")
	case "create_directory":
		return appendFirst("mkdir -p", "path", "dirname")
	}
	return ""
}

func (g *Generator) navigationCommand(cmd domain.ParsedCommand) string {
	input := cmd.OriginalInput

	switch cmd.Action {
	case "change_directory":
		path := "."
		if slot, ok := cmd.Slot("path"); ok && slot.Value != "" {
			path = slot.Value
		}
		switch {
		case strings.Contains(input, "back"),
			strings.Contains(input, "up"),
			strings.Contains(input, "parent"):
			path = ".."
		case strings.Contains(input, "home"):
			path = "~"
		}
		return "cd " + path
	case "list_directory":
		path := "."
		if slot, ok := cmd.Slot("path"); ok && slot.Value != "" {
			path = slot.Value
		}
		flags := "-la"
		if !strings.Contains(input, "hidden") && !strings.Contains(input, "all") {
			flags = "-l"
		}
		return "ls " + flags + " " + path
	case "print_directory":
		return "pwd"
	}
	return ""
}

func (g *Generator) searchCommand(cmd domain.ParsedCommand) string {
	pattern := ""
	path := "."
	if slot, ok := cmd.Slot("pattern"); ok {
		pattern = slot.Value
	}
	if slot, ok := cmd.Slot("path"); ok && slot.Value != "" {
		path = slot.Value
	}

	switch cmd.Action {
	case "find_files":
		if m := extensionRE.FindStringSubmatch(cmd.OriginalInput); m != nil {
			pattern = "*." + m[1]
		} else if pattern == "" {
			pattern = "*"
		}
		return "find " + path + " -name '" + pattern + "'"
	case "search_content":
		if m := searchTermRE.FindStringSubmatch(cmd.OriginalInput); m != nil {
			pattern = m[1]
		}
		if pattern != "" {
			return "grep -rn '" + pattern + "' " + path
		}
	}
	return ""
}

func (g *Generator) gitCommand(cmd domain.ParsedCommand) string {
	switch cmd.Action {
	case "git_status":
		return "git status"
	case "git_add":
		path := "."
		if slot, ok := cmd.Slot("path"); ok && slot.Value != "" {
			path = slot.Value
		}
		return "git add " + path
	case "git_commit":
		message := "update"
		if m := commitMsgRE.FindStringSubmatch(cmd.OriginalInput); m != nil {
			message = strings.TrimSpace(m[1])
		} else if m := commitMsgAltRE.FindStringSubmatch(cmd.OriginalInput); m != nil {
			message = strings.TrimSpace(m[1])
		}
		return "git commit -m '" + message + "'"
	case "git_push", "git_pull":
		verb := strings.TrimPrefix(cmd.Action, "git_")
		remote := "origin"
		branch := ""
		if slot, ok := cmd.Slot("remote"); ok && slot.Value != "" {
			remote = slot.Value
		}
		if slot, ok := cmd.Slot("branch"); ok {
			branch = slot.Value
		}
		if branch == "" {
			return "git " + verb + " " + remote
		}
		return "git " + verb + " " + remote + " " + branch
	case "git_branch":
		if slot, ok := cmd.Slot("branch_name"); ok && slot.Value != "" {
			return "git branch " + slot.Value
		}
		return "git branch -a"
	case "git_checkout":
		branch := ""
		if slot, ok := cmd.Slot("branch_name"); ok {
			branch = slot.Value
		}
		if branch == "" {
			if m := branchRE.FindStringSubmatch(cmd.OriginalInput); m != nil {
				branch = m[1]
			}
		}
		if branch != "" {
			return "git checkout " + branch
		}
	}
	return "git " + strings.TrimPrefix(cmd.Action, "git_")
}

func (g *Generator) processCommand(cmd domain.ParsedCommand) string {
	switch cmd.Action {
	case "list_processes":
		return "ps aux"
	case "kill_process":
		process := ""
		if slot, ok := cmd.Slot("process"); ok {
			process = slot.Value
		}
		if process == "" {
			return ""
		}
		if digitsRE.MatchString(process) {
			return "kill " + process
		}
		return "pkill " + process
	}
	return ""
}

func (g *Generator) systemCommand(cmd domain.ParsedCommand) string {
	switch cmd.Action {
	case "show_datetime":
		if strings.Contains(cmd.OriginalInput, "time") {
			return "date +%H:%M:%S"
		}
		if strings.Contains(cmd.OriginalInput, "date") {
			return "date +%Y-%m-%d"
		}
		return "date"
	case "show_environment":
		if slot, ok := cmd.Slot("variable"); ok && slot.Value != "" {
			return "echo $" + slot.Value
		}
		return "env"
	}
	return ""
}
