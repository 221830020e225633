package source

// File is the on-disk shape of a seed file. The same struct decodes
// TOML, YAML and JSON.
type File struct {
	Budgets []BudgetRecord `toml:"budgets" yaml:"budgets" json:"budgets"`
}

// BudgetRecord is one budget as written in a seed file. Amounts may be
// written as numbers or as decimal strings, and created as a native
// datetime or a string.
type BudgetRecord struct {
	ID           string          `toml:"id" yaml:"id" json:"id"`
	Name         string          `toml:"name" yaml:"name" json:"name"`
	Total        any             `toml:"total" yaml:"total" json:"total"`
	Spent        any             `toml:"spent" yaml:"spent" json:"spent"`
	Remaining    any             `toml:"remaining" yaml:"remaining" json:"remaining"` // ignored, remaining is derived
	Created      any             `toml:"created" yaml:"created" json:"created"`
	Age          string          `toml:"age" yaml:"age" json:"age"` // e.g. "48h", used when created is empty
	Emoji        string          `toml:"emoji" yaml:"emoji" json:"emoji"`
	AccentColors []string        `toml:"accent_colors" yaml:"accent_colors" json:"accent_colors"`
	Expenses     []ExpenseRecord `toml:"expenses" yaml:"expenses" json:"expenses"`
}

// ExpenseRecord is one expense nested under a BudgetRecord.
type ExpenseRecord struct {
	ID       string  `toml:"id" yaml:"id" json:"id"`
	Name     string  `toml:"name" yaml:"name" json:"name"`
	Amount   any     `toml:"amount" yaml:"amount" json:"amount"`
	Created  any     `toml:"created" yaml:"created" json:"created"`
	Emoji    string  `toml:"emoji" yaml:"emoji" json:"emoji"`
	Location string  `toml:"location" yaml:"location" json:"location"`
	Quantity int     `toml:"quantity" yaml:"quantity" json:"quantity"`
	Note     *string `toml:"note" yaml:"note" json:"note"`
}

// Format identifies a seed file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)
