package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/x/user/mock"
)

func TestServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_user.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user core.User) (core.User, error) {
			return user, nil
		},
	)

	s := NewService(mockRepo)
	created, err := s.Create(context.Background(), core.User{Name: "alice", Wallet: "  0xabc "})
	if assert.NoError(t, err) {
		assert.Equal(t, "0xabc", created.Wallet)
		assert.NotEmpty(t, created.ID)
	}
}

func TestServiceCreateKeepsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_user.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), core.User{ID: "given", Wallet: "0xabc"}).Return(core.User{ID: "given", Wallet: "0xabc"}, nil)

	s := NewService(mockRepo)
	created, err := s.Create(context.Background(), core.User{ID: "given", Wallet: "0xabc"})
	if assert.NoError(t, err) {
		assert.Equal(t, "given", created.ID)
	}
}

func TestServiceCreateRequiresWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_user.NewMockRepository(ctrl)

	s := NewService(mockRepo)
	_, err := s.Create(context.Background(), core.User{Name: "alice", Wallet: " "})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestServiceGetByWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_user.NewMockRepository(ctrl)
	mockRepo.EXPECT().GetByWallet(gomock.Any(), "0xabc").Return(core.User{ID: "1", Wallet: "0xabc"}, nil)
	mockRepo.EXPECT().GetByWallet(gomock.Any(), "0xdef").Return(core.User{}, core.NewErrorNotFound())

	s := NewService(mockRepo)
	user, err := s.GetByWallet(context.Background(), "0xabc")
	if assert.NoError(t, err) {
		assert.Equal(t, "1", user.ID)
	}

	_, err = s.GetByWallet(context.Background(), "0xdef")
	assert.ErrorAs(t, err, &core.ErrorNotFound{})

	_, err = s.GetByWallet(context.Background(), "")
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestServiceWalletNormalization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checksummed := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	mockRepo := mock_user.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user core.User) (core.User, error) {
			return user, nil
		},
	)
	mockRepo.EXPECT().GetByWallet(gomock.Any(), checksummed).Return(core.User{ID: "1", Wallet: checksummed}, nil).Times(2)
	mockRepo.EXPECT().GetByWallet(gomock.Any(), "0xabc").Return(core.User{ID: "2", Wallet: "0xabc"}, nil)

	s := NewService(mockRepo)

	created, err := s.Create(context.Background(), core.User{Wallet: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"})
	if assert.NoError(t, err) {
		assert.Equal(t, checksummed, created.Wallet)
	}

	_, err = s.GetByWallet(context.Background(), "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED")
	assert.NoError(t, err)

	// stray whitespace around the lookup
	_, err = s.GetByWallet(context.Background(), " "+checksummed+" ")
	assert.NoError(t, err)

	user, err := s.GetByWallet(context.Background(), " 0xabc\t")
	if assert.NoError(t, err) {
		assert.Equal(t, "2", user.ID)
	}
}
