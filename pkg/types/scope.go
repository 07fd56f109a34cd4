package types

// Scope selects between the global (per-user) and local (per-project)
// installation location. It is passed explicitly into every call that
// needs it; there is no process-wide mode flag.
type Scope struct {
	Global bool
}

// GlobalScope targets the per-user installation.
var GlobalScope = Scope{Global: true}

// LocalScope targets the per-project installation.
var LocalScope = Scope{Global: false}

func (s Scope) String() string {
	if s.Global {
		return "global"
	}
	return "local"
}

// ParseScope converts a persisted scope string back into a Scope.
func ParseScope(s string) Scope {
	return Scope{Global: s == "global"}
}
