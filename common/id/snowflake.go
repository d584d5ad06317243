package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID. Safe to call
// more than once; only the first call takes effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a time-ordered int64 ID for feedback sessions. User IDs are
// not minted here; they come from the identity collaborator as UUIDs.
func New() int64 {
	return node.Generate().Int64()
}
