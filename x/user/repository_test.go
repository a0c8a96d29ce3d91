package user

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/internal/testutil"
)

var ctx = context.Background()
var repo Repository
var db *gorm.DB

func TestMain(m *testing.M) {
	log.Println("Test Start")

	var cleanup_db func()
	db, cleanup_db = testutil.CreateDB()
	defer cleanup_db()

	repo = NewRepository(db, testutil.TestConfig)

	m.Run()

	log.Println("Test End")
}

func TestRepository(t *testing.T) {
	email := "alice@example.com"
	alice := core.User{
		ID:          "cn4k1p2g5m8s0a000001",
		Name:        "alice",
		Email:       &email,
		Wallet:      "0xabc",
		MailingList: true,
	}

	created, err := repo.Create(ctx, alice)
	if assert.NoError(t, err) {
		assert.Equal(t, alice.ID, created.ID)
		assert.False(t, created.CDate.IsZero())
	}

	// wallet is unique
	_, err = repo.Create(ctx, core.User{ID: "cn4k1p2g5m8s0a000002", Wallet: "0xabc"})
	assert.ErrorAs(t, err, &core.ErrorAlreadyExists{})

	found, err := repo.GetByWallet(ctx, "0xabc")
	if assert.NoError(t, err) {
		assert.Equal(t, "alice", found.Name)
		assert.True(t, found.MailingList)
		if assert.NotNil(t, found.Email) {
			assert.Equal(t, email, *found.Email)
		}
	}

	byID, err := repo.GetByID(ctx, alice.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "0xabc", byID.Wallet)
	}

	_, err = repo.GetByWallet(ctx, "0xmissing")
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	_, err = repo.Create(ctx, core.User{ID: "cn4k1p2g5m8s0a000003", Name: "bob", Wallet: "0xdef"})
	assert.NoError(t, err)

	users, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, users, 2)
		assert.Equal(t, "0xabc", users[0].Wallet)
		assert.Nil(t, users[1].Email)
	}

	count, err := repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(2), count)
	}
}
