package services

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// TicketIDGenerator hands out globally unique ticket ids
type TicketIDGenerator interface {
	NewTicketID() string
}

// SnowflakeTicketIDs generates ticket ids from a snowflake node.
// Ids are the base32 form of the snowflake, uppercased so they survive
// the normalization applied to customer input.
type SnowflakeTicketIDs struct {
	node *snowflake.Node
}

// NewSnowflakeTicketIDs creates a generator for the given node number (0-1023)
func NewSnowflakeTicketIDs(nodeID int64) (*SnowflakeTicketIDs, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeTicketIDs{node: node}, nil
}

// NewTicketID returns a new ticket id
func (g *SnowflakeTicketIDs) NewTicketID() string {
	return strings.ToUpper(g.node.Generate().Base32())
}
