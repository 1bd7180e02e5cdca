package config

// Values bound to cobra flags. Each command reads only the ones it registers.
var (
	Network    string
	ConfigPath string
	Verbose    bool

	Group       string
	Member      string
	Members     string
	Name        string
	Symbol      string
	Description string
	User        string
	To          string
	Amount      string
	Condition   string
	Enabled     bool
	Expiry      int64
	Nonce       int64
	Address     string

	// AssumeYes skips confirmation prompts.
	AssumeYes bool
	// JSONOutput makes list commands print machine readable output.
	JSONOutput bool
)
