package clash

import (
	"regexp"
	"strings"
)

// PatchOptions controls what Patch inserts into a config.
type PatchOptions struct {
	// DNS is prepended to every flow-style `default-nameserver` and
	// `nameserver` list in the dns section. Empty means skip.
	DNS string
	// Rule is inserted into the rules section, before the first rule
	// containing Anchor. Empty means skip.
	Rule string
	// Anchor locates the insertion point for Rule.
	Anchor string
}

// A Change records one rewritten or inserted line, 1-based.
type Change struct {
	Line int
	Old  string // empty for insertions
	New  string
}

// PatchResult is the outcome of a Patch run.
type PatchResult struct {
	Content     string
	Changes     []Change
	DNSModified bool
	RuleAdded   bool
	RuleExists  bool
	AnchorFound bool
}

var nameserverLineRe = regexp.MustCompile(`^(\s+(?:default-nameserver|nameserver):\s*\[)(.*?)(\].*)$`)

// Patch rewrites a Clash config text, touching only the lines it must: DNS
// servers are prepended to flow-style nameserver lists, and the rule goes in
// right before the anchor rule. Everything else, comments and formatting
// included, passes through byte for byte.
func Patch(content string, opts PatchOptions) PatchResult {
	lines := strings.Split(content, "\n")
	res := PatchResult{}

	// A rule counts as existing when its type and domain already appear,
	// whatever the policy. "DOMAIN-SUFFIX,corp.example.com,DIRECT" clashes
	// with "DOMAIN-SUFFIX,corp.example.com,Proxy".
	if key := ruleKey(opts.Rule); key != "" {
		for _, line := range lines {
			if strings.Contains(line, key) {
				res.RuleExists = true
				break
			}
		}
	}

	section := ""
	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "dns:"):
			section = "dns"
		case strings.HasPrefix(line, "rules:"):
			section = "rules"
		case line == "---" || (line != "" && line[0] != ' ' && line[0] != '#'):
			section = ""
		}

		if section == "dns" && opts.DNS != "" {
			if m := nameserverLineRe.FindStringSubmatch(line); m != nil {
				if !listContains(m[2], opts.DNS) {
					items := opts.DNS
					if strings.TrimSpace(m[2]) != "" {
						items += ", " + m[2]
					}
					patched := m[1] + items + m[3]
					res.Changes = append(res.Changes, Change{Line: i + 1, Old: line, New: patched})
					res.DNSModified = true
					line = patched
				}
			}
		}

		if section == "rules" && opts.Rule != "" {
			trimmed := strings.TrimSpace(line)
			if !res.RuleExists && !res.RuleAdded &&
				strings.HasPrefix(trimmed, "-") && strings.Contains(line, opts.Anchor) {
				inserted := "    - '" + opts.Rule + "'"
				res.Changes = append(res.Changes, Change{Line: i + 1, New: inserted})
				res.RuleAdded = true
				res.AnchorFound = true
				out = append(out, inserted)
			}
		}

		out = append(out, line)
	}

	res.Content = strings.Join(out, "\n")
	return res
}

// listContains reports whether a flow-list body like `1.1.1.1, 8.8.8.8`
// already has addr as one of its items.
func listContains(body, addr string) bool {
	for _, item := range strings.Split(body, ",") {
		item = strings.Trim(strings.TrimSpace(item), `'"`)
		if item == addr {
			return true
		}
	}
	return false
}

// ruleKey returns the `type,domain` prefix of a rule like
// `DOMAIN-SUFFIX,example.com,DIRECT`, or "" when the rule has no domain.
func ruleKey(rule string) string {
	parts := strings.SplitN(rule, ",", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "," + parts[1]
}
