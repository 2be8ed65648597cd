package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // takes a free-form value
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string // empty if none
	Type     flagType
	Desc     string
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	FilePattern string   // glob for file arguments, empty if none
}

// completionMeta holds completion hints the FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
// Names, shorthands and descriptions come from the FlagSets.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"theme":      {Values: builtinThemes()},
		"highlight":  {Values: []string{config.HighlightClient, config.HighlightServer}},
		"config":     {FileGlob: "*.yaml,*.yml"},
		"input":      {FileGlob: "*.md,*.markdown"},
		"output":     {IsDir: true},
		"asset-path": {IsDir: true},
	}
}

// builtinThemes lists the embedded theme names.
func builtinThemes() []string {
	loader, err := md2site.NewAssetLoader("")
	if err != nil {
		return nil
	}
	themes, err := loader.ListStyles()
	if err != nil {
		return nil
	}
	return themes
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet, meta map[string]completionMeta) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	meta := flagCompletionMeta()

	names := []string{"build", "doctor", "version", "help", "completion"}
	shells := make([]string, len(supportedShells))
	for i, s := range supportedShells {
		shells[i] = string(s)
	}

	return []commandDef{
		{
			Name:        "build",
			Desc:        "Build the site (default)",
			Flags:       extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{}), meta),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check that PDF output can run",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{}), meta),
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: names},
		{Name: "completion", Desc: "Generate shell completion script", Args: shells},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		writeBash(&b, cmds)
	case ShellZsh:
		writeZsh(&b, cmds)
	case ShellFish:
		writeFish(&b, cmds)
	case ShellPowerShell:
		writePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2site completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2site completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2site completion fish > ~/.config/fish/completions/md2site.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2site completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords returns every spelling of the flags, long first.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// valueFlags returns the flags that take a value, merged across commands
// by long name.
func valueFlags(cmds []commandDef) []flagDef {
	seen := make(map[string]bool)
	var out []flagDef
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type == flagBool || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			out = append(out, f)
		}
	}
	return out
}

// globExts turns "*.md,*.markdown" into ["md", "markdown"].
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func writeBash(b *strings.Builder, cmds []commandDef) {
	names := strings.Join(commandNames(cmds), " ")

	b.WriteString("# bash completion for md2site\n\n")
	b.WriteString("_md2site_completions() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"\"\n")
	b.WriteString("    for ((i=1; i<COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	fmt.Fprintf(b, "            %s) cmd=\"${COMP_WORDS[i]}\"; break ;;\n", strings.Join(commandNames(cmds), "|"))
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range valueFlags(cmds) {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		var action string
		switch f.Type {
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))", strings.Join(f.Values, " "))
		case flagDir:
			action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
		case flagFile:
			action = "COMPREPLY=($(compgen -f -- \"$cur\"))"
		default:
			action = "COMPREPLY=()"
		}
		fmt.Fprintf(b, "        %s) %s; return ;;\n", pattern, action)
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if c.Name == "build" {
			continue
		}
		words := append(flagWords(c.Flags), c.Args...)
		fmt.Fprintf(b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return ;;\n",
			c.Name, strings.Join(words, " "))
	}
	b.WriteString("    esac\n\n")

	var build commandDef
	for _, c := range cmds {
		if c.Name == "build" {
			build = c
		}
	}
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords(build.Flags), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ -z \"$cmd\" ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", names)
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY+=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _md2site_completions md2site\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshQuote escapes s for a single-quoted _arguments description.
func zshQuote(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "[", `\[`)
	return strings.ReplaceAll(s, "]", `\]`)
}

func zshGlob(glob string) string {
	return "*.(" + strings.Join(globExts(glob), "|") + ")"
}

// zshFlagSpec renders one _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagDir:
		action = fmt.Sprintf(":%s:_files -/", f.Long)
	case flagFile:
		action = fmt.Sprintf(":%s:_files -g \"%s\"", f.Long, zshGlob(f.FileGlob))
	default:
		action = fmt.Sprintf(":%s: ", f.Long)
	}

	desc := "[" + zshQuote(f.Desc) + "]" + action
	if f.Short == "" {
		return fmt.Sprintf("'--%s%s'", f.Long, desc)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, desc)
}

func writeZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef md2site\n\n")
	b.WriteString("_md2site() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )) && [[ ${words[CURRENT]} != -* ]]; then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -g \"*.(md|markdown)\"\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case ${words[2]} in\n")
	var build commandDef
	for _, c := range cmds {
		if c.Name == "build" {
			build = c
			continue
		}
		fmt.Fprintf(b, "        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0:
			b.WriteString("            _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(b, "                %s \\\n", zshFlagSpec(f))
			}
			b.WriteString("            ;;\n")
		case len(c.Args) > 0:
			fmt.Fprintf(b, "            (( CURRENT == 3 )) && _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
			b.WriteString("            ;;\n")
		default:
			b.WriteString("            ;;\n")
		}
	}

	b.WriteString("        *)\n")
	b.WriteString("            _arguments \\\n")
	for _, f := range build.Flags {
		fmt.Fprintf(b, "                %s \\\n", zshFlagSpec(f))
	}
	fmt.Fprintf(b, "                '*:input:_files -g \"%s\"'\n", zshGlob(build.FilePattern))
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2site md2site\n")
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func writeFish(b *strings.Builder, cmds []commandDef) {
	var others []string
	for _, c := range cmds {
		if c.Name != "build" {
			others = append(others, c.Name)
		}
	}

	b.WriteString("# fish completion for md2site\n\n")
	b.WriteString("function __fish_md2site_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2site_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2site -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c md2site -n __fish_md2site_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_md2site_using_command %s'", c.Name)
		if c.Name == "build" {
			// Build is the default command, so its flags apply anywhere else.
			cond = fmt.Sprintf("'not __fish_seen_subcommand_from %s'", strings.Join(others, " "))
			fmt.Fprintf(b, "complete -c md2site -n %s -a '(__fish_complete_suffix .md)'\n", cond)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "complete -c md2site -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		}
		for _, f := range c.Flags {
			fmt.Fprintf(b, "complete -c md2site -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(b, " -s %s", f.Short)
			}
			fmt.Fprintf(b, " -l %s -d %s", f.Long, fishQuote(f.Desc))
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(b, " -x -a %s", fishQuote(strings.Join(f.Values, " ")))
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagFile:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -x")
			}
			b.WriteString("\n")
		}
	}
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func writePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# powershell completion for md2site\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2site -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	fmt.Fprintf(b, "    $commands = %s\n", psList(commandNames(cmds)))
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s' = %s\n", c.Name, psList(flagWords(c.Flags)))
	}
	b.WriteString("    }\n")
	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "        '%s' = %s\n", c.Name, psList(c.Args))
		}
	}
	b.WriteString("    }\n")
	b.WriteString("    $values = @{\n")
	for _, f := range valueFlags(cmds) {
		if f.Type != flagEnum {
			continue
		}
		for _, w := range flagWords([]flagDef{f}) {
			fmt.Fprintf(b, "        '%s' = %s\n", w, psList(f.Values))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete) { $elements = @($elements | Select-Object -SkipLast 1) }\n")
	b.WriteString("    $cmd = 'build'\n")
	b.WriteString("    if ($elements.Count -gt 0 -and $commands -contains $elements[0]) { $cmd = $elements[0] }\n")
	b.WriteString("    $prev = if ($elements.Count -gt 0) { $elements[-1] } else { '' }\n\n")

	b.WriteString("    $candidates = @()\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $candidates = $values[$prev]\n")
	b.WriteString("    } elseif ($wordToComplete -like '-*') {\n")
	b.WriteString("        $candidates = $flags[$cmd]\n")
	b.WriteString("    } elseif ($elements.Count -eq 0) {\n")
	b.WriteString("        $candidates = $commands\n")
	b.WriteString("    } elseif ($positional.ContainsKey($cmd)) {\n")
	b.WriteString("        $candidates = $positional[$cmd]\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}
