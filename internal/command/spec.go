package command

// Spec declares a leaf command. Names may be written identifier-style;
// they are normalized to dashed form at build time.
type Spec struct {
	Name    string
	Aliases []string
	Doc     string
	Args    []Argument
	Handler Handler
}

// SuperSpec declares a super-command: a shared constructor-argument
// schema plus a set of subcommands. Names may be camel-case type names
// ("SuperCommand" registers as "super-command"). A super-command
// without a Doc is a configuration error.
type SuperSpec struct {
	Name        string
	Aliases     []string
	Doc         string
	SharedArgs  []Argument
	Subcommands []Spec
}
