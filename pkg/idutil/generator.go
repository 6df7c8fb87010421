package idutil

import (
	"github.com/bwmarrin/snowflake"
)

type Generator interface {
	NewID() string
}

type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator returns a generator of short base58 ids. Ids are unique across every
// generator running with a distinct node id (0..1023), and never repeat on the same node.
func NewSnowflakeGenerator(nodeID int64) (*snowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &snowflakeGenerator{node: node}, nil
}

func (g *snowflakeGenerator) NewID() string {
	return g.node.Generate().Base58()
}
