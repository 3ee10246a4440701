package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/session"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := session.NewStore(time.Hour)

	sess := &models.TestSession{Language: models.LanguageLatin, TermKeys: []string{"pater"}}
	id := store.Create(sess)
	require.NotEmpty(t, id)
	assert.Equal(t, id, sess.ID)

	got := store.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, []string{"pater"}, got.TermKeys)
}

func TestStore_GetUnknown(t *testing.T) {
	store := session.NewStore(time.Hour)
	assert.Nil(t, store.Get("nope"))
}

func TestStore_Expiry(t *testing.T) {
	store := session.NewStore(-time.Second)

	id := store.Create(&models.TestSession{})
	assert.Nil(t, store.Get(id), "expired session must not be returned")
}

func TestStore_Delete(t *testing.T) {
	store := session.NewStore(time.Hour)

	id := store.Create(&models.TestSession{})
	store.Delete(id)
	assert.Nil(t, store.Get(id))
	assert.Equal(t, 0, store.Len())
}

func TestStore_PutRefreshes(t *testing.T) {
	store := session.NewStore(time.Hour)

	id := store.Create(&models.TestSession{Correct: 0})
	sess := store.Get(id)
	sess.Correct = 3
	store.Put(id, sess)

	got := store.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Correct)
}

func TestSession_PositionAndCurrentKey(t *testing.T) {
	sess := &models.TestSession{
		TermKeys: []string{"a", "b", "c"},
		Order:    []int{2, 0, 1},
	}

	assert.Equal(t, 0, sess.Position())
	assert.Equal(t, "c", sess.CurrentKey())

	sess.Correct = 2
	sess.Wrong = 2
	assert.Equal(t, 1, sess.Position(), "position wraps around the term list")
	assert.Equal(t, "a", sess.CurrentKey())
}

func TestSession_CurrentKeyWithoutOrder(t *testing.T) {
	empty := &models.TestSession{}
	assert.Equal(t, "", empty.CurrentKey())

	unordered := &models.TestSession{TermKeys: []string{"pater"}}
	assert.Equal(t, "", unordered.CurrentKey(), "term keys without a populated order yield no current card")
}
