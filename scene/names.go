package scene

import (
	"fmt"
	"sync/atomic"
)

// Names hands out default node names "Node0", "Node1", ... Create one per
// process and share it with everything that builds nodes. Constructors given
// a nil *Names draw from a package-wide registry instead.
type Names struct {
	next atomic.Uint64
}

var fallbackNames Names

func (n *Names) Next() string {
	return fmt.Sprintf("Node%d", n.next.Add(1)-1)
}

func (n *Names) pick(name string) string {
	if name != "" {
		return name
	}
	if n == nil {
		n = &fallbackNames
	}
	return n.Next()
}
