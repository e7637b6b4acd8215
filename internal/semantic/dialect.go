package semantic

// Dialect identifies which source-language frontend produced the AST
// being analyzed. The analyzer itself is dialect-agnostic (it consumes
// the shared internal/ast IR); Dialect only selects the small set of
// policies spec §3/§4.6 call out as "per-dialect and fixed at
// construction".
type Dialect int

const (
	DialectBasic Dialect = iota
	DialectPascal
	DialectViper
	DialectZia
)

func (d Dialect) String() string {
	switch d {
	case DialectBasic:
		return "basic"
	case DialectPascal:
		return "pascal"
	case DialectViper:
		return "viper"
	case DialectZia:
		return "zia"
	default:
		return "unknown"
	}
}

// Policy bundles the per-dialect knobs the analyzer and import resolver
// consult.
type Policy struct {
	// CaseFold makes identifier/namespace lookup case-insensitive
	// (BASIC and Pascal; spec §3 ClassInfo/InterfaceInfo note, §4.6).
	CaseFold bool

	// ToleratesImportCycles selects the Zia cycle policy (tolerate,
	// re-entry skipped) vs. the ViperLang policy (hard error with a
	// stack trace). Only meaningful for dialects that use ImportResolver.
	ToleratesImportCycles bool

	// HasNamespaces enables NAMESPACE/USING handling (BASIC, Zia).
	HasNamespaces bool

	// HasImports enables import/bind resolution (ViperLang, Zia).
	HasImports bool

	// HasOOP enables class/interface inheritance validation (Pascal,
	// ViperLang, Zia entity/interface declarations).
	HasOOP bool

	// ErrorCodePrefix picks the dialect-scoped error-code family (spec
	// §4.3: "B????" for BASIC, "V????" for ViperLang, etc).
	ErrorCodePrefix string
}

// PolicyFor returns the fixed policy for a dialect.
func PolicyFor(d Dialect) Policy {
	switch d {
	case DialectBasic:
		return Policy{CaseFold: true, HasNamespaces: true, ErrorCodePrefix: "B"}
	case DialectPascal:
		return Policy{CaseFold: true, HasOOP: true, ErrorCodePrefix: "P"}
	case DialectViper:
		return Policy{HasImports: true, HasOOP: true, ToleratesImportCycles: false, ErrorCodePrefix: "V"}
	case DialectZia:
		return Policy{HasImports: true, HasOOP: true, HasNamespaces: true, ToleratesImportCycles: true, ErrorCodePrefix: "Z"}
	default:
		return Policy{}
	}
}
