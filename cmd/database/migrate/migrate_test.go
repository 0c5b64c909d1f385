package migration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateCreatesTables(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// Running twice is a no-op.
	require.NoError(t, Migrate(db))

	for _, table := range []string{"rooms", "participants", "ingredients", "room_constraints", "recipes", "votes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("participants", "idx_participant_room_user"))
	assert.True(t, db.Migrator().HasIndex("ingredients", "idx_ingredient_room_name"))
	assert.True(t, db.Migrator().HasIndex("votes", "idx_vote_user_recipe"))
}
