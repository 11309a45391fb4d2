package domain

// Verdict is the outcome of a compatibility check.
type Verdict uint8

const (
	// VerdictPass means the project can be installed silently.
	VerdictPass Verdict = iota
	// VerdictWarn means the project can be installed but needs attention.
	VerdictWarn
	// VerdictFail means the project must not be installed.
	VerdictFail
)

// String returns a lower-case name of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictWarn:
		return "warn"
	case VerdictFail:
		return "fail"
	default:
		return "pass"
	}
}

// Compatibility is the verdict of a compatibility check with a human-readable reason.
type Compatibility struct {
	Verdict Verdict
	Reason  string
}

// CheckCompatibility classifies whether a project fits a server install.
func CheckCompatibility(p *RegistryProject, serverOnly bool) Compatibility {
	switch {
	case serverOnly && p.ServerSupport == SupportUnsupported:
		return Compatibility{Verdict: VerdictFail, Reason: "project does not support server-side installs"}
	case p.ClientSupport == SupportRequired:
		return Compatibility{Verdict: VerdictWarn, Reason: "project requires a client-side install"}
	case p.ServerSupport == SupportUnknown,
		p.ClientSupport == SupportUnknown &&
			(p.ServerSupport == SupportRequired || p.ServerSupport == SupportOptional):
		return Compatibility{
			Verdict: VerdictWarn,
			Reason:  "project lists either server- or client-side installation requirements as unknown",
		}
	default:
		return Compatibility{Verdict: VerdictPass}
	}
}
