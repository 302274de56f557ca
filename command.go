package bosun

// BuildCommand maps an invocation onto the argument vector and optional stdin
// payload for the selected tool. It is pure and deterministic: identical
// inputs always produce an identical vector, and it performs no I/O.
//
// The vector is handed directly to process creation; no shell ever sees it,
// so nothing in the prompt needs quoting or escaping.
//
// Shapes:
//
//	primary:  <primary> [--model M] [--settings S] (--add-dir D)* (--allowedTools T)* -p [<prompt>]
//	fallback: <fallback> run [--model M] <prompt>
//
// In sandbox mode the prompt is omitted from the vector and returned as the
// stdin payload, prefixed with a /sandbox directive line. An empty stdin
// return means the child gets no standard input.
func (o *Orchestrator) BuildCommand(inv Invocation) (argv []string, stdin string) {
	tool := inv.Tool
	if tool == "" {
		tool = o.primary
	}

	if o.fallback != "" && tool == o.fallback {
		argv = []string{tool, "run"}
		if inv.Model != "" {
			argv = append(argv, "--model", inv.Model)
		}
		argv = append(argv, inv.Prompt)
		return argv, ""
	}

	argv = []string{tool}
	if inv.Model != "" {
		argv = append(argv, "--model", inv.Model)
	}
	if inv.Settings != "" {
		argv = append(argv, "--settings", inv.Settings)
	}
	for _, dir := range inv.AddDirs {
		argv = append(argv, "--add-dir", dir)
	}
	for _, name := range inv.AllowedTools {
		argv = append(argv, "--allowedTools", name)
	}

	if inv.Sandbox {
		argv = append(argv, "-p")
		return argv, "/sandbox\n" + inv.Prompt
	}
	argv = append(argv, "-p", inv.Prompt)
	return argv, ""
}
