package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/internal/clash"
)

const (
	defaultClashDNS    = "11.11.11.11"
	defaultClashRule   = "DOMAIN-SUFFIX,sankuai.com,DIRECT"
	defaultClashAnchor = "meituan.com"
)

func defaultClashConfigPath(gs *state.GlobalState) string {
	home, err := gs.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "clash", "OpenConnectUs.yaml")
}

func clashConfigPath(gs *state.GlobalState, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return defaultClashConfigPath(gs)
}

type cmdClashDNS struct {
	gs *state.GlobalState

	dns     string
	inplace bool
}

func (c *cmdClashDNS) run(_ *cobra.Command, args []string) error {
	path := clashConfigPath(c.gs, args)

	cfg, err := clash.LoadConfig(c.gs.FS, path)
	if err != nil {
		return err
	}
	changed := cfg.AddDNS(c.dns)

	if !c.inplace {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		printToStdout(c.gs, "---\n")
		printToStdout(c.gs, string(data))
		c.gs.Logger.Infof("Use -i to modify %s in place", path)
		return nil
	}

	if !changed {
		printToStdout(c.gs, fmt.Sprintf("DNS %s is already in %s, nothing to do\n", c.dns, path))
		return nil
	}

	bak, err := clash.Backup(c.gs.FS, path)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(c.gs.FS, path, data, 0o644); err != nil {
		return fmt.Errorf("could not rewrite %s: %w", path, err)
	}

	printToStdout(c.gs, fmt.Sprintf("DNS %s added to %s (backup: %s)\n", c.dns, path, bak))
	return nil
}

func getCmdClashDNS(gs *state.GlobalState) *cobra.Command {
	c := &cmdClashDNS{gs: gs}

	cmd := &cobra.Command{
		Use:   "dns [config_file]",
		Short: "Add a DNS server to a Clash config",
		Long: `Parse a Clash YAML config and make sure the given DNS server is present
in both the dns.default-nameserver and dns.nameserver lists. The result is
printed to stdout unless -i rewrites the file in place, after backing it up
to <file>.bak.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&c.dns, "dns", defaultClashDNS, "DNS server address to add")
	flags.BoolVarP(&c.inplace, "inplace", "i", false, "modify the file in place, keeping a .bak backup")

	return cmd
}

type cmdClashPatch struct {
	gs *state.GlobalState

	dns     string
	rule    string
	anchor  string
	inplace bool
}

func (c *cmdClashPatch) run(_ *cobra.Command, args []string) error {
	path := clashConfigPath(c.gs, args)

	raw, err := afero.ReadFile(c.gs.FS, path)
	if err != nil {
		return fmt.Errorf("could not read config %s: %w", path, err)
	}

	res := clash.Patch(string(raw), clash.PatchOptions{
		DNS:    c.dns,
		Rule:   c.rule,
		Anchor: c.anchor,
	})

	if len(res.Changes) == 0 {
		c.reportNothingToDo(res)
		return nil
	}

	printToStdout(c.gs, "Changes:\n")
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	for _, change := range res.Changes {
		printToStdout(c.gs, fmt.Sprintf("line %d:\n", change.Line))
		if change.Old != "" {
			_, _ = red.Fprintf(c.gs.Stdout, "- %s\n", change.Old)
		}
		_, _ = green.Fprintf(c.gs.Stdout, "+ %s\n", change.New)
	}

	if !c.inplace {
		c.gs.Logger.Infof("Use -i to modify %s in place", path)
		return nil
	}

	bak, err := clash.Backup(c.gs.FS, path)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(c.gs.FS, path, []byte(res.Content), 0o644); err != nil {
		return fmt.Errorf("could not rewrite %s: %w", path, err)
	}

	printToStdout(c.gs, fmt.Sprintf("Updated %s (backup: %s)\n", path, bak))
	return nil
}

func (c *cmdClashPatch) reportNothingToDo(res clash.PatchResult) {
	if c.dns != "" && !res.DNSModified {
		printToStdout(c.gs, fmt.Sprintf("DNS %s is already in the config\n", c.dns))
	}
	if c.rule != "" {
		switch {
		case res.RuleExists:
			printToStdout(c.gs, fmt.Sprintf("rule %s already exists\n", c.rule))
		case !res.AnchorFound:
			printToStdout(c.gs, fmt.Sprintf("no rule mentions %s, cannot place %s\n", c.anchor, c.rule))
		}
	}
	printToStdout(c.gs, "nothing to do\n")
}

func getCmdClashPatch(gs *state.GlobalState) *cobra.Command {
	c := &cmdClashPatch{gs: gs}

	cmd := &cobra.Command{
		Use:   "patch [config_file]",
		Short: "Patch a Clash config without reformatting it",
		Long: `Edit a Clash config line by line, leaving untouched lines exactly as they
are: the DNS server is prepended to flow-style nameserver lists in the dns
section, and the rule is inserted right before the first rule mentioning the
anchor domain. A diff-style report of the changes is printed; -i rewrites
the file in place after backing it up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&c.dns, "dns", defaultClashDNS, "DNS server address to prepend, empty to skip")
	flags.StringVar(&c.rule, "rule", defaultClashRule, "rule to insert as 'TYPE,content,policy', empty to skip")
	flags.StringVar(&c.anchor, "anchor", defaultClashAnchor, "domain whose first rule marks the insertion point")
	flags.BoolVarP(&c.inplace, "inplace", "i", false, "modify the file in place, keeping a .bak backup")

	return cmd
}

func getCmdClash(gs *state.GlobalState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clash",
		Short: "Edit Clash proxy configuration files",
	}
	cmd.AddCommand(getCmdClashDNS(gs), getCmdClashPatch(gs))
	return cmd
}
