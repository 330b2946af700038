// Package trackingnumber issues tracking numbers from snowflake ids.
package trackingnumber

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

const Prefix = "PKG-"

// Generator implements ports.TrackingNumberGenerator. Numbers look like
// "PKG-" followed by the upper-case base36 snowflake id. They are unique as
// long as every running instance uses a different node id.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator accepts node ids from 0 to 1023.
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errors.Wrapf(err, "snowflake node %d", nodeID)
	}
	return &Generator{node: node}, nil
}

func (g *Generator) Next() string {
	return Prefix + strings.ToUpper(g.node.Generate().Base36())
}
