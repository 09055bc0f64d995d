package rollcall

import (
	"github.com/jmorrow/rollcall/internal/discover"
	"github.com/jmorrow/rollcall/internal/store"
)

// Public type aliases for internal types used in the collection and catalog
// APIs. These are Go type aliases (=) — identical to the internal types at
// compile time. External consumers use these names; no conversion is needed.

type Kind = discover.Kind
type Item = discover.Item
type ExitCode = discover.ExitCode

const (
	KindModule   = discover.KindModule
	KindClass    = discover.KindClass
	KindFunction = discover.KindFunction
)

const (
	ExitOK               = discover.ExitOK
	ExitTestsFailed      = discover.ExitTestsFailed
	ExitInterrupted      = discover.ExitInterrupted
	ExitInternalError    = discover.ExitInternalError
	ExitUsageError       = discover.ExitUsageError
	ExitNoTestsCollected = discover.ExitNoTestsCollected
)

type Store = store.Store
type Run = store.Run
type Node = store.Node
