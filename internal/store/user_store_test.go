package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/Malek-bh/agrical-api/internal/db"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func seedUser(t *testing.T, s *UserStore, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, s.Create(context.Background(), user))
	return user
}

func TestUserStore_CreateAndFind(t *testing.T) {
	s := NewUserStore(newTestDB(t))
	ctx := context.Background()

	created := seedUser(t, s, "alice", "alice@x.com")
	require.NotZero(t, created.ID)

	found, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "alice@x.com", found.Email)

	_, err = s.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestUserStore_Create_Conflicts(t *testing.T) {
	s := NewUserStore(newTestDB(t))
	ctx := context.Background()

	seedUser(t, s, "alice", "alice@x.com")

	err := s.Create(ctx, &models.User{Username: "alice", Email: "other@x.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, httperr.ErrConflict)

	err = s.Create(ctx, &models.User{Username: "bob", Email: "alice@x.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, httperr.ErrConflict)
}

func TestUserStore_Update_Partial(t *testing.T) {
	s := NewUserStore(newTestDB(t))
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@x.com")

	name := "Alice A."
	updated, err := s.Update(ctx, user.ID, UserUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.FullName)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@x.com", updated.Email)
}

func TestUserStore_Update_ConflictLeavesNoPartialState(t *testing.T) {
	s := NewUserStore(newTestDB(t))
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@x.com")
	seedUser(t, s, "bob", "bob@x.com")

	// the username change is fine but the email collides; neither may stick
	newName := "alice2"
	takenEmail := "bob@x.com"
	_, err := s.Update(ctx, user.ID, UserUpdate{Username: &newName, Email: &takenEmail})
	assert.ErrorIs(t, err, httperr.ErrConflict)

	reloaded, err := s.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", reloaded.Username)
	assert.Equal(t, "alice@x.com", reloaded.Email)
}

func TestUserStore_Update_SameValuesNoConflict(t *testing.T) {
	s := NewUserStore(newTestDB(t))
	ctx := context.Background()

	user := seedUser(t, s, "alice", "alice@x.com")

	// re-submitting your own username/email is not a collision
	sameName := "alice"
	sameEmail := "alice@x.com"
	_, err := s.Update(ctx, user.ID, UserUpdate{Username: &sameName, Email: &sameEmail})
	assert.NoError(t, err)
}

func TestUserStore_Delete_Cascades(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "alice@x.com")
	bob := seedUser(t, s, "bob", "bob@x.com")

	post := models.Post{Title: "t", Content: "c", UserID: alice.ID}
	require.NoError(t, db.Create(&post).Error)

	// bob comments on alice's post; his comment dies with the post
	require.NoError(t, db.Create(&models.Comment{Content: "c", PostID: post.ID, UserID: bob.ID}).Error)

	service := models.ServiceProvider{Name: "n", Description: "d", ContactInfo: "c", UserID: alice.ID}
	require.NoError(t, db.Create(&service).Error)
	require.NoError(t, db.Create(&models.ServiceRequest{
		Description:       "d",
		ServiceProviderID: service.ID,
		UserID:            bob.ID,
	}).Error)

	require.NoError(t, s.Delete(ctx, alice.ID))

	_, err := s.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	for _, model := range []any{
		&models.Post{}, &models.Comment{}, &models.ServiceProvider{}, &models.ServiceRequest{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T should have been cascaded away", model)
	}
}

func TestUserStore_Delete_NotFound(t *testing.T) {
	s := NewUserStore(newTestDB(t))

	err := s.Delete(context.Background(), 12345)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}
