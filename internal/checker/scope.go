package checker

// SymbolKind represents the kind of symbol
type SymbolKind int

const (
	SymState SymbolKind = iota
	SymFunction
	SymParam
	SymLocal
)

// String returns the string representation of the symbol kind
func (sk SymbolKind) String() string {
	switch sk {
	case SymState:
		return "state variable"
	case SymFunction:
		return "function"
	case SymParam:
		return "parameter"
	case SymLocal:
		return "local variable"
	default:
		return "unknown"
	}
}

// Symbol represents a symbol in the symbol table
type Symbol struct {
	Name      string
	Type      *Type
	Kind      SymbolKind
	DeclIndex int // position in the contract declaration sequence; -1 for locals
}

// Scope represents a lexical scope with a symbol table
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a new scope with an optional parent
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Define adds a symbol to the current scope, overwriting nothing:
// the caller is expected to reject duplicates via ResolveLocal first.
func (s *Scope) Define(name string, sym *Symbol) {
	s.symbols[name] = sym
}

// Resolve looks up a symbol in the current scope and parent scopes.
// Returns nil if the symbol is not found.
func (s *Scope) Resolve(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	if s.parent != nil {
		return s.parent.Resolve(name)
	}
	return nil
}

// ResolveLocal looks up a symbol only in the current scope (not parent scopes)
func (s *Scope) ResolveLocal(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	return nil
}
