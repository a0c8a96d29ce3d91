package character

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/x/character/mock"
)

func TestServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, character core.CharacterData) (core.CharacterData, error) {
			return character, nil
		},
	)

	s := NewService(mockRepo)
	created, err := s.Create(context.Background(), core.CharacterData{Name: " Thorin ", OwnerWallet: "0xdef"})
	if assert.NoError(t, err) {
		assert.Equal(t, "Thorin", created.Name)
		assert.NotEmpty(t, created.ID)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	s := NewService(mockRepo)

	_, err := s.Create(context.Background(), core.CharacterData{OwnerWallet: "0xdef"})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})

	_, err = s.Create(context.Background(), core.CharacterData{Name: "Thorin"})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestServiceCreateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(core.CharacterData{}, errors.New("connection refused"))

	s := NewService(mockRepo)
	_, err := s.Create(context.Background(), core.CharacterData{Name: "Thorin", OwnerWallet: "0xdef"})
	if assert.Error(t, err) {
		assert.Equal(t, 500, core.ErrorStatus(err))
	}
}
