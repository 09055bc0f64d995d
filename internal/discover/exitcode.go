package discover

import "fmt"

// ExitCode mirrors pytest's exit codes so rollcall's results read the same
// way pytest's do. A collection-only run never produces ExitTestsFailed, and
// ExitInternalError is reserved for bugs in the collector itself; both exist
// so the enum covers pytest's full range.
type ExitCode int

const (
	ExitOK               ExitCode = 0
	ExitTestsFailed      ExitCode = 1
	ExitInterrupted      ExitCode = 2
	ExitInternalError    ExitCode = 3
	ExitUsageError       ExitCode = 4
	ExitNoTestsCollected ExitCode = 5
)

func (c ExitCode) String() string {
	switch c {
	case ExitOK:
		return "OK"
	case ExitTestsFailed:
		return "tests failed"
	case ExitInterrupted:
		return "collection interrupted"
	case ExitInternalError:
		return "internal error"
	case ExitUsageError:
		return "usage error"
	case ExitNoTestsCollected:
		return "no tests collected"
	default:
		return fmt.Sprintf("exit code %d", int(c))
	}
}
