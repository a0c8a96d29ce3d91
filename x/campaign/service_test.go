package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/x/campaign/mock"
)

func TestServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_campaign.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, campaign core.Campaign) (core.Campaign, error) {
			return campaign, nil
		},
	)

	s := NewService(mockRepo)
	created, err := s.Create(context.Background(), core.Campaign{
		GMWallet:       "0xgm",
		NameOfCampaign: "Lost Mine",
		PCWallets:      []string{"0xpc", "0xpc", "0xother"},
	})
	if assert.NoError(t, err) {
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, []string{"0xpc", "0xother"}, []string(created.PCWallets))
		assert.NotNil(t, created.AvailableTimes)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_campaign.NewMockRepository(ctrl)
	s := NewService(mockRepo)

	_, err := s.Create(context.Background(), core.Campaign{GMWallet: "0xgm"})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})

	_, err = s.Create(context.Background(), core.Campaign{NameOfCampaign: "Lost Mine"})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestServiceJoin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_campaign.NewMockRepository(ctrl)
	mockRepo.EXPECT().Join(gomock.Any(), "c1", "0xpc").Return(core.Campaign{ID: "c1", PCWallets: []string{"0xpc"}}, nil)

	s := NewService(mockRepo)

	campaign, err := s.Join(context.Background(), "c1", "0xpc")
	if assert.NoError(t, err) {
		assert.Equal(t, "c1", campaign.ID)
	}

	_, err = s.Join(context.Background(), "c1", "  ")
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestServiceJoinSameAddressAnyCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checksummed := "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

	mockRepo := mock_campaign.NewMockRepository(ctrl)
	mockRepo.EXPECT().Join(gomock.Any(), "c1", checksummed).Return(core.Campaign{ID: "c1", PCWallets: []string{checksummed}}, nil).Times(2)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, campaign core.Campaign) (core.Campaign, error) {
			return campaign, nil
		},
	)

	s := NewService(mockRepo)

	_, err := s.Join(context.Background(), "c1", "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359")
	assert.NoError(t, err)
	_, err = s.Join(context.Background(), "c1", "0XFB6916095CA1DF60BB79CE92CE3EA74C37C5D359")
	assert.NoError(t, err)

	created, err := s.Create(context.Background(), core.Campaign{
		GMWallet:       "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
		NameOfCampaign: "Lost Mine",
		PCWallets:      []string{"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359", checksummed},
	})
	if assert.NoError(t, err) {
		assert.Equal(t, checksummed, created.GMWallet)
		assert.Equal(t, []string{checksummed}, []string(created.PCWallets))
	}
}
